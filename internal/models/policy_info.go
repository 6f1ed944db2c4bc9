package models

// PolicyInfo is the serialisable view of a method cache policy
type PolicyInfo struct {
	Service        string   `json:"service"`
	Method         string   `json:"method"`
	KeyPrefix      string   `json:"key_prefix"`
	KeyFields      []string `json:"key_fields"`
	RequiredFields []string `json:"required_fields"`
	TTLSeconds     int      `json:"ttl_seconds"`
	HasAdmit       bool     `json:"has_admit"`
	HasDeny        bool     `json:"has_deny"`
	Digest         bool     `json:"digest"`
}
