/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package hostgroup

// Tree maps a node name to its parent name. Roots map to "".
type Tree map[string]string

// Chain returns the ancestors of name, root first, ending with name. A
// name missing from the tree yields just itself. Cycles stop the walk.
func (t Tree) Chain(name string) []string {
	if name == "" {
		return nil
	}

	chain := []string{name}
	seen := map[string]bool{name: true}

	for cur := name; ; {
		parent, ok := t[cur]
		if !ok || parent == "" || seen[parent] {
			break
		}

		seen[parent] = true
		chain = append(chain, parent)
		cur = parent
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain
}

// Trees holds the hierarchies used when traversal is enabled.
type Trees struct {
	Regions    Tree
	SiteGroups Tree
}
