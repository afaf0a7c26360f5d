package series

import (
	"encoding/json"
	"math"
)

// EquityPoint represents one timestamped equity sample
// ⭐ 계약: t는 ISO-8601 문자열, v는 절대 NaN/Infinity로 직렬화되지 않음 (null로 변환)
type EquityPoint struct {
	T string  `json:"t"` // ISO-8601 timestamp
	V float64 `json:"v"` // equity value
}

// equityPointWire mirrors EquityPoint with a nullable value for JSON.
type equityPointWire struct {
	T string   `json:"t"`
	V *float64 `json:"v"`
}

// MarshalJSON serializes the point, converting non-finite values to null.
// NaN/Infinity는 JSON에 존재하지 않으므로 null로 내보냄
func (p EquityPoint) MarshalJSON() ([]byte, error) {
	w := equityPointWire{T: p.T}
	if !math.IsNaN(p.V) && !math.IsInf(p.V, 0) {
		v := p.V
		w.V = &v
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses the point, mapping null values back to NaN.
func (p *EquityPoint) UnmarshalJSON(data []byte) error {
	var w equityPointWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.T = w.T
	if w.V == nil {
		p.V = math.NaN()
	} else {
		p.V = *w.V
	}
	return nil
}

// IsFinite reports whether the point's value is a normal float.
func (p EquityPoint) IsFinite() bool {
	return !math.IsNaN(p.V) && !math.IsInf(p.V, 0)
}
