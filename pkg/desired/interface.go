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
	"net"
	"strings"

	"github.com/gosnmp/gosnmp"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// DefaultSNMPCommunity is the community used when none is configured.
const DefaultSNMPCommunity = "{$SNMP_COMMUNITY}"

// Zabbix codes for SNMPv3 settings, keyed by the gosnmp constants.
var (
	securityLevels = map[gosnmp.SnmpV3MsgFlags]int{
		gosnmp.NoAuthNoPriv: 0,
		gosnmp.AuthNoPriv:   1,
		gosnmp.AuthPriv:     2,
	}

	securityLevelNames = map[string]gosnmp.SnmpV3MsgFlags{
		"noauthnopriv": gosnmp.NoAuthNoPriv,
		"authnopriv":   gosnmp.AuthNoPriv,
		"authpriv":     gosnmp.AuthPriv,
	}

	authProtocols = map[gosnmp.SnmpV3AuthProtocol]int{
		gosnmp.MD5:    0,
		gosnmp.SHA:    1,
		gosnmp.SHA224: 2,
		gosnmp.SHA256: 3,
		gosnmp.SHA384: 4,
		gosnmp.SHA512: 5,
	}

	privProtocols = map[gosnmp.SnmpV3PrivProtocol]int{
		gosnmp.DES:     0,
		gosnmp.AES:     1,
		gosnmp.AES192:  2,
		gosnmp.AES256:  3,
		gosnmp.AES192C: 4,
		gosnmp.AES256C: 5,
	}

	protocolAliases = map[string]string{
		"sha1":   "sha",
		"aes128": "aes",
	}
)

// InterfaceDefaults is used when the record has no interface context.
type InterfaceDefaults struct {
	Community string
}

// BuildInterface returns the single interface for rec: the one described by
// context "zabbix.interface_type" or the SNMPv2 default.
func BuildInterface(rec *models.SourceRecord, defaults InterfaceDefaults) (*models.InterfaceSpec, error) {
	ip, err := primaryAddress(rec)
	if err != nil {
		return nil, err
	}

	community := defaults.Community
	if community == "" {
		community = DefaultSNMPCommunity
	}

	spec := &models.InterfaceSpec{IP: ip, UseIP: true}

	rawType, ok := rec.Context.Lookup("zabbix", "interface_type")
	if !ok {
		spec.Type = models.InterfaceSNMP
		spec.Port = models.InterfaceSNMP.DefaultPort()
		spec.SNMP = &models.SNMPDetails{Version: 2, Bulk: true, Community: community}

		return spec, nil
	}

	typ, ok := models.AsInt(rawType)
	if !ok || !models.InterfaceType(typ).Valid() {
		return nil, incomplete(rec, fmt.Sprintf("a valid zabbix.interface_type (got %v)", rawType))
	}

	spec.Type = models.InterfaceType(typ)
	spec.Port = spec.Type.DefaultPort()

	if rawPort, ok := rec.Context.Lookup("zabbix", "interface_port"); ok {
		port, ok := models.AsInt(rawPort)
		if !ok || port <= 0 || port > 65535 {
			return nil, incomplete(rec, fmt.Sprintf("a valid zabbix.interface_port (got %v)", rawPort))
		}

		spec.Port = fmt.Sprint(port)
	}

	if spec.Type == models.InterfaceSNMP {
		details, err := snmpDetails(rec, community)
		if err != nil {
			return nil, err
		}

		spec.SNMP = details
	}

	return spec, nil
}

func primaryAddress(rec *models.SourceRecord) (string, error) {
	if rec.PrimaryIP == "" {
		return "", incomplete(rec, "a primary IP address")
	}

	addr := rec.PrimaryIP
	if ip, _, err := net.ParseCIDR(addr); err == nil {
		return ip.String(), nil
	}

	if ip := net.ParseIP(addr); ip != nil {
		return ip.String(), nil
	}

	return "", incomplete(rec, fmt.Sprintf("a parseable primary IP (got %q)", addr))
}

func snmpDetails(rec *models.SourceRecord, community string) (*models.SNMPDetails, error) {
	snmp, ok := rec.Context.Map("zabbix", "snmp")
	if !ok {
		return nil, incomplete(rec, "zabbix.snmp settings for an SNMP interface")
	}

	version, ok := models.AsInt(snmp["version"])
	if !ok {
		return nil, incomplete(rec, "zabbix.snmp.version")
	}

	details := &models.SNMPDetails{Version: version, Bulk: true}

	if bulk, ok := snmp["bulk"]; ok {
		details.Bulk = truthy(bulk)
	}

	switch version {
	case 1, 2:
		details.Community = community
		if c, ok := snmp["community"]; ok {
			details.Community = models.Stringify(c)
		}
	case 3:
		if err := setV3(details, snmp); err != nil {
			return nil, incomplete(rec, err.Error())
		}
	default:
		return nil, incomplete(rec, fmt.Sprintf("a supported zabbix.snmp.version (got %d)", version))
	}

	return details, nil
}

func setV3(d *models.SNMPDetails, snmp map[string]any) error {
	d.SecurityName = models.Stringify(snmp["securityname"])
	d.AuthPassphrase = models.Stringify(snmp["authpassphrase"])
	d.PrivPassphrase = models.Stringify(snmp["privpassphrase"])
	d.ContextName = models.Stringify(snmp["contextname"])

	var err error

	if v, ok := snmp["securitylevel"]; ok {
		if d.SecurityLevel, err = parseSecurityLevel(v); err != nil {
			return err
		}
	}

	if v, ok := snmp["authprotocol"]; ok {
		if d.AuthProtocol, err = parseAuthProtocol(v); err != nil {
			return err
		}
	}

	if v, ok := snmp["privprotocol"]; ok {
		if d.PrivProtocol, err = parsePrivProtocol(v); err != nil {
			return err
		}
	}

	return nil
}

func normalizeName(v any) string {
	s := strings.ToLower(strings.TrimSpace(models.Stringify(v)))
	s = strings.NewReplacer("-", "", "_", "").Replace(s)

	if alias, ok := protocolAliases[s]; ok {
		return alias
	}

	return s
}

// parseSecurityLevel accepts the Zabbix code (0-2) or a level name such as
// "authPriv".
func parseSecurityLevel(v any) (int, error) {
	if n, ok := models.AsInt(v); ok && n >= 0 && n <= 2 {
		return n, nil
	}

	if flags, ok := securityLevelNames[normalizeName(v)]; ok {
		return securityLevels[flags], nil
	}

	return 0, fmt.Errorf("a valid zabbix.snmp.securitylevel (got %v)", v)
}

// parseAuthProtocol accepts the Zabbix code (0-5) or a protocol name.
func parseAuthProtocol(v any) (int, error) {
	if n, ok := models.AsInt(v); ok && n >= 0 && n <= 5 {
		return n, nil
	}

	name := normalizeName(v)
	for proto, code := range authProtocols {
		if strings.ToLower(proto.String()) == name {
			return code, nil
		}
	}

	return 0, fmt.Errorf("a valid zabbix.snmp.authprotocol (got %v)", v)
}

// parsePrivProtocol accepts the Zabbix code (0-5) or a protocol name.
func parsePrivProtocol(v any) (int, error) {
	if n, ok := models.AsInt(v); ok && n >= 0 && n <= 5 {
		return n, nil
	}

	name := normalizeName(v)
	for proto, code := range privProtocols {
		if strings.ToLower(proto.String()) == name {
			return code, nil
		}
	}

	return 0, fmt.Errorf("a valid zabbix.snmp.privprotocol (got %v)", v)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.ToLower(t)
		return s == "1" || s == "true" || s == "yes"
	default:
		n, ok := models.AsInt(v)
		return ok && n != 0
	}
}

func incomplete(rec *models.SourceRecord, missing string) error {
	return &models.RecordIncompleteError{RecordID: rec.ID, Name: rec.Name, Missing: missing}
}
