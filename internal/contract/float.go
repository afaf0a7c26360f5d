package contract

import (
	"encoding/json"
	"math"
)

// Float is a float64 whose JSON form is never NaN/Infinity
// ⭐ 계약: 비정상 부동소수는 null로 직렬화, null은 NaN으로 역직렬화
type Float float64

// MarshalJSON emits null for non-finite values.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON maps null back to NaN.
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// IsFinite reports whether the value is a normal float.
func (f Float) IsFinite() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
