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

package desired

import (
	"fmt"
	"regexp"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// Zabbix technical host names allow alphanumerics, spaces, dots, dashes
// and underscores.
var technicalNameRe = regexp.MustCompile(`^[0-9A-Za-z._ -]+$`)

// HostNames returns the technical and visible name for a record name.
// Names Zabbix would reject become NETBOX_ID<id>, keeping the original as
// the visible name.
func HostNames(id int, name string) (technical, visible string) {
	if technicalNameRe.MatchString(name) {
		return name, name
	}

	return fmt.Sprintf("NETBOX_ID%d", id), name
}

// clusterName applies virtual chassis handling: only the master is synced,
// under the chassis name.
func clusterName(rec *models.SourceRecord) (string, error) {
	vc := rec.VirtualChassis
	if vc == nil {
		return rec.Name, nil
	}

	if vc.MasterID != rec.ID {
		return "", &models.RecordSkippedError{
			RecordID: rec.ID,
			Name:     rec.Name,
			Reason:   fmt.Sprintf("not the master of virtual chassis %s", vc.Name),
		}
	}

	if vc.Name == "" {
		return rec.Name, nil
	}

	return vc.Name, nil
}
