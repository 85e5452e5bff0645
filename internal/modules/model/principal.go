package model

import (
	"cmp"
	"strings"

	"github.com/bytedance/sonic"
)

// ClientPrincipal is the identity injected by the hosting edge. It is never persisted.
type ClientPrincipal struct {
	IdentityProvider string           `json:"identityProvider"`
	UserID           string           `json:"userId"`
	UserDetails      string           `json:"userDetails"`
	UserRoles        []string         `json:"userRoles"`
	Claims           []PrincipalClaim `json:"claims,omitempty"`
}

// PrincipalClaim is written with the edge's short keys (typ, val) and read
// from either those or the long form (type, value).
type PrincipalClaim struct {
	Type  string `json:"typ"`
	Value string `json:"val"`
}

func (c *PrincipalClaim) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  string `json:"type"`
		Value string `json:"value"`
		Typ   string `json:"typ"`
		Val   string `json:"val"`
	}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Type = cmp.Or(raw.Type, raw.Typ)
	c.Value = cmp.Or(raw.Value, raw.Val)
	return nil
}

func (p *ClientPrincipal) IsAuthenticated() bool {
	return p != nil && strings.TrimSpace(p.UserID) != ""
}

func (p *ClientPrincipal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.UserRoles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

func (p *ClientPrincipal) IsAdmin() bool { return p.HasRole("admin") }
