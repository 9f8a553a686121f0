package topology

import "gopkg.in/yaml.v3"

// slotRangeView is the YAML-friendly shape for a SlotRange: plain strings
// for addresses instead of the struct form, for operators reading the dump
// by eye.
type slotRangeView struct {
	Start    int      `yaml:"start"`
	Stop     int      `yaml:"stop"`
	Master   string   `yaml:"master"`
	Replicas []string `yaml:"replicas,omitempty"`
}

// DumpSlotMap renders a canonical slot map as YAML, for operators wiring
// the coordinator into their own diagnostic endpoints.
func DumpSlotMap(m SlotMap) ([]byte, error) {
	views := make([]slotRangeView, 0, len(m))
	for _, r := range m {
		v := slotRangeView{Start: r.Start, Stop: r.Stop, Master: r.Master.String()}
		for _, rep := range r.Replicas {
			v.Replicas = append(v.Replicas, rep.String())
		}
		views = append(views, v)
	}
	return yaml.Marshal(views)
}
