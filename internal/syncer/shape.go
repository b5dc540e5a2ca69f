package syncer

// ShapeProbe locates the item array inside a decoded list response
type ShapeProbe struct {
	Name    string
	Extract func(doc interface{}) ([]interface{}, bool)
}

// PathProbe returns a probe reading the array found by walking object keys
func PathProbe(path ...string) ShapeProbe {
	name := "$"
	for _, p := range path {
		name += "." + p
	}

	return ShapeProbe{
		Name: name,
		Extract: func(doc interface{}) ([]interface{}, bool) {
			cur := doc
			for _, key := range path {
				obj, ok := cur.(map[string]interface{})
				if !ok {
					return nil, false
				}
				if cur, ok = obj[key]; !ok {
					return nil, false
				}
			}
			items, ok := cur.([]interface{})
			return items, ok
		},
	}
}

// DefaultProbes returns the probes tried for a list scope, in order.
// itemKey is the domain-specific key of the scope, e.g. "blocks".
func DefaultProbes(itemKey string) []ShapeProbe {
	probes := []ShapeProbe{PathProbe("items")}
	if itemKey != "" && itemKey != "items" {
		probes = append(probes, PathProbe(itemKey))
	}
	probes = append(probes, PathProbe("data", "items"))
	if itemKey != "" && itemKey != "items" {
		probes = append(probes, PathProbe("data", itemKey))
	}
	return append(probes,
		PathProbe("data", "results"),
		PathProbe("results"),
		PathProbe("data"),
		PathProbe(),
	)
}

// DetectItems tries each probe in order and returns the first array found
func DetectItems(doc interface{}, probes []ShapeProbe) ([]interface{}, string, bool) {
	for _, probe := range probes {
		if items, ok := probe.Extract(doc); ok {
			return items, probe.Name, true
		}
	}
	return nil, "", false
}
