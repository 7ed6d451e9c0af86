package gts

import "math"

// CheckPosition проверяет, что позиция или расстояние в импульсах
// после отбрасывания дробной части помещается в int32.
func CheckPosition(what string, v float64) error {
	_, err := toInt32(what, v)
	return err
}

func toInt32(what string, v float64) (int32, error) {
	t := math.Trunc(v)
	if math.IsNaN(t) || t < math.MinInt32 || t > math.MaxInt32 {
		return 0, &ValueRangeError{What: what, Value: v, Min: math.MinInt32, Max: math.MaxInt32}
	}
	return int32(t), nil
}

func toInt16(what string, v float64) (int16, error) {
	t := math.Trunc(v)
	if math.IsNaN(t) || t < math.MinInt16 || t > math.MaxInt16 {
		return 0, &ValueRangeError{What: what, Value: v, Min: math.MinInt16, Max: math.MaxInt16}
	}
	return int16(t), nil
}
