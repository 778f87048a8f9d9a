package graph

import "reflect"

// Typed views over the loose Configuration bag. Each view carries only
// the fields relevant to its node type plus an Extra map preserving
// unknown keys, so forward-compatible custom fields survive a decode →
// edit → encode round trip.
//
// Usage:
//
//	cfg := graph.LLMConfigFrom(node.Config)
//	cfg.Temperature = 0.2
//	node.Config = cfg.ToConfiguration()

// TriggerConfig holds trigger-node settings.
type TriggerConfig struct {
	Event    string // event name that fires the trigger
	Schedule string // cron-style schedule, if time-driven
	Extra    map[string]any
}

// LLMConfig holds language-model-node settings.
type LLMConfig struct {
	Model       string
	Prompt      string
	Temperature float64
	Extra       map[string]any
}

// TransformConfig holds transform-node settings.
type TransformConfig struct {
	Language   string // expression language, e.g. "jq"
	Expression string
	Extra      map[string]any
}

// ConditionConfig holds condition-node settings.
type ConditionConfig struct {
	Expression string // predicate routed to the true/false outputs
	Extra      map[string]any
}

// ActionConfig holds action-node settings.
type ActionConfig struct {
	Service   string
	Operation string
	Extra     map[string]any
}

// OutputConfig holds output-node settings.
type OutputConfig struct {
	Format      string
	Destination string
	Extra       map[string]any
}

// TriggerConfigFrom decodes a configuration bag into a typed view.
// Unknown keys are preserved in Extra. Safe to call with nil.
func TriggerConfigFrom(c Configuration) TriggerConfig {
	var t TriggerConfig
	t.Extra = decode(c, map[string]any{
		"event":    &t.Event,
		"schedule": &t.Schedule,
	})
	return t
}

// ToConfiguration converts the typed view back to the loose bag form.
// Zero-valued fields are omitted.
func (t TriggerConfig) ToConfiguration() Configuration {
	return encode(t.Extra, map[string]any{
		"event":    t.Event,
		"schedule": t.Schedule,
	})
}

// LLMConfigFrom decodes a configuration bag into a typed view.
func LLMConfigFrom(c Configuration) LLMConfig {
	var l LLMConfig
	l.Extra = decode(c, map[string]any{
		"model":       &l.Model,
		"prompt":      &l.Prompt,
		"temperature": &l.Temperature,
	})
	return l
}

// ToConfiguration converts the typed view back to the loose bag form.
func (l LLMConfig) ToConfiguration() Configuration {
	return encode(l.Extra, map[string]any{
		"model":       l.Model,
		"prompt":      l.Prompt,
		"temperature": l.Temperature,
	})
}

// TransformConfigFrom decodes a configuration bag into a typed view.
func TransformConfigFrom(c Configuration) TransformConfig {
	var tr TransformConfig
	tr.Extra = decode(c, map[string]any{
		"language":   &tr.Language,
		"expression": &tr.Expression,
	})
	return tr
}

// ToConfiguration converts the typed view back to the loose bag form.
func (tr TransformConfig) ToConfiguration() Configuration {
	return encode(tr.Extra, map[string]any{
		"language":   tr.Language,
		"expression": tr.Expression,
	})
}

// ConditionConfigFrom decodes a configuration bag into a typed view.
func ConditionConfigFrom(c Configuration) ConditionConfig {
	var cc ConditionConfig
	cc.Extra = decode(c, map[string]any{
		"expression": &cc.Expression,
	})
	return cc
}

// ToConfiguration converts the typed view back to the loose bag form.
func (cc ConditionConfig) ToConfiguration() Configuration {
	return encode(cc.Extra, map[string]any{
		"expression": cc.Expression,
	})
}

// ActionConfigFrom decodes a configuration bag into a typed view.
func ActionConfigFrom(c Configuration) ActionConfig {
	var a ActionConfig
	a.Extra = decode(c, map[string]any{
		"service":   &a.Service,
		"operation": &a.Operation,
	})
	return a
}

// ToConfiguration converts the typed view back to the loose bag form.
func (a ActionConfig) ToConfiguration() Configuration {
	return encode(a.Extra, map[string]any{
		"service":   a.Service,
		"operation": a.Operation,
	})
}

// OutputConfigFrom decodes a configuration bag into a typed view.
func OutputConfigFrom(c Configuration) OutputConfig {
	var o OutputConfig
	o.Extra = decode(c, map[string]any{
		"format":      &o.Format,
		"destination": &o.Destination,
	})
	return o
}

// ToConfiguration converts the typed view back to the loose bag form.
func (o OutputConfig) ToConfiguration() Configuration {
	return encode(o.Extra, map[string]any{
		"format":      o.Format,
		"destination": o.Destination,
	})
}

// decode copies known keys from the bag into the typed destinations and
// returns the remaining keys as the Extra map (nil when none remain).
func decode(c Configuration, fields map[string]any) map[string]any {
	if c == nil {
		return nil
	}
	var extra map[string]any
	for k, v := range c {
		dst, known := fields[k]
		if !known {
			if extra == nil {
				extra = make(map[string]any)
			}
			extra[k] = v
			continue
		}
		switch d := dst.(type) {
		case *string:
			*d, _ = v.(string)
		case *float64:
			switch n := v.(type) {
			case float64:
				*d = n
			case int:
				*d = float64(n)
			}
		case *bool:
			*d, _ = v.(bool)
		}
	}
	return extra
}

// encode builds a bag from non-zero typed fields plus the Extra map.
func encode(extra map[string]any, fields map[string]any) Configuration {
	c := make(Configuration, len(fields)+len(extra))
	for k, v := range fields {
		switch t := v.(type) {
		case string:
			if t != "" {
				c[k] = t
			}
		case float64:
			if t != 0 {
				c[k] = t
			}
		case bool:
			if t {
				c[k] = t
			}
		}
	}
	for k, v := range extra {
		c[k] = v
	}
	return c
}

// configEqual compares two configuration bags structurally. Nil and
// empty maps compare equal so a defaulted node matches its snapshot.
func configEqual(a, b Configuration) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
