package domain

import (
	"encoding/json/v2"
	"net"
)

// BlockKind discriminates blacklist entries.
type BlockKind string

// Block rule kinds. Legacy documents stored bare strings; the load-time
// migration classifies them into one of these.
const (
	BlockUsername BlockKind = "username"
	BlockIP       BlockKind = "ip"
)

// BlockRule denies a visitor by handle or IP. Matching is exact string
// comparison for both kinds.
type BlockRule struct {
	Kind  BlockKind `json:"kind"`
	Value string    `json:"value"`
}

// UnmarshalJSON accepts both the tagged object form and the legacy bare
// string form. Bare strings are classified as IP rules when they parse
// as an address, username rules otherwise.
func (r *BlockRule) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ClassifyBlockValue(s)
		return nil
	}
	type alias BlockRule
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = BlockRule(a)
	return nil
}

// ClassifyBlockValue builds a BlockRule from an untyped blacklist value.
func ClassifyBlockValue(s string) BlockRule {
	if net.ParseIP(s) != nil {
		return BlockRule{Kind: BlockIP, Value: s}
	}
	return BlockRule{Kind: BlockUsername, Value: s}
}

// Matches reports whether the rule applies to the given handle/ip pair.
func (r BlockRule) Matches(handle, ip string) bool {
	switch r.Kind {
	case BlockUsername:
		return r.Value != "" && r.Value == handle
	case BlockIP:
		return r.Value != "" && r.Value == ip
	}
	return false
}

// VisitLog records one successful (non-blocked) visit.
type VisitLog struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"` // RFC 3339
	Username  string `json:"username"`
	IP        string `json:"ip"`
	Platform  string `json:"platform"`
}

// AccessState groups everything the access evaluator and security gate
// consult: the whitelist, the blacklist, and the global-access switch.
type AccessState struct {
	// AllowedUsers is the whitelist granting access to private items when
	// global access is off. Entries are lowercased handles or numeric-id
	// strings.
	AllowedUsers []string    `json:"allowedUsers"`
	Blacklist    []BlockRule `json:"blacklist"`
	GlobalAccess bool        `json:"globalAccess"`
	VisitLogs    []VisitLog  `json:"visitLogs"`
}
