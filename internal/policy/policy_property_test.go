package policy

import (
	"testing"

	"pgregory.net/rapid"

	"go-rpc-cache/internal/requesttest"
)

func drawFindRequest(t *rapid.T) *requesttest.MapRequest {
	values := make(map[string]any)
	if rapid.Bool().Draw(t, "hasID") {
		values["id"] = rapid.Int64().Draw(t, "id")
	}
	if rapid.Bool().Draw(t, "hasName") {
		values["name"] = rapid.StringMatching(`[a-z]{0,6}`).Draw(t, "name")
	}
	if rapid.Bool().Draw(t, "hasToken") {
		values["token"] = rapid.StringMatching(`[a-z0-9]{0,4}`).Draw(t, "token")
	}
	values["flag"] = rapid.Bool().Draw(t, "flag")
	values["skip"] = rapid.Bool().Draw(t, "skip")
	return newFindRequest(values)
}

// Cacheable always equals requiredFieldsPresent && admit && !deny
func TestProperty_CacheableFormula(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		opts := Options{On: []string{"id", "name"}}
		if rapid.Bool().Draw(rt, "require") {
			opts.Require = []string{"token"}
		}
		withAdmit := rapid.Bool().Draw(rt, "withAdmit")
		if withAdmit {
			opts.If = boolField("flag")
		}
		withDeny := rapid.Bool().Draw(rt, "withDeny")
		if withDeny {
			opts.Unless = boolField("skip")
		}

		p, err := NewCachePolicy("UserService", "find", schema(findFields), opts)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}

		req := drawFindRequest(rt)
		want := p.RequiredFieldsPresent(req) &&
			(!withAdmit || req.ValueOf("flag").(bool)) &&
			(!withDeny || !req.ValueOf("skip").(bool))

		if got := p.Cacheable(req); got != want {
			rt.Fatalf("Cacheable() = %v, want %v", got, want)
		}
	})
}

// Key is deterministic for an unchanged request
func TestProperty_KeyDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		digest := rapid.Bool().Draw(rt, "digest")
		p, err := NewCachePolicy("UserService", "find", schema(findFields), Options{
			On:     []string{"id", "name", "token"},
			Digest: digest,
		})
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}

		req := drawFindRequest(rt)
		first := p.Key(req)
		for i := 0; i < 3; i++ {
			if got := p.Key(req); got != first {
				rt.Fatalf("Key() changed between calls: %q then %q", first, got)
			}
		}
	})
}

// Key fields keep first-occurrence order without repeats
func TestProperty_KeyFieldsUniqueOrdered(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		on := rapid.SliceOf(rapid.SampledFrom(findFields)).Draw(rt, "on")

		p, err := NewCachePolicy("UserService", "find", schema(findFields), Options{On: on})
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}

		var want []string
		seen := map[string]bool{}
		for _, f := range on {
			if !seen[f] {
				seen[f] = true
				want = append(want, f)
			}
		}

		got := p.KeyFields()
		if len(got) != len(want) {
			rt.Fatalf("KeyFields() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				rt.Fatalf("KeyFields() = %v, want %v", got, want)
			}
		}
	})
}
