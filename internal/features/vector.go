package features

// Value значение одной колонки. Для числовых колонок заполнено Number,
// для категориальных Category.
type Value struct {
	Number   float64
	Category string
}

// Vector вектор признаков в порядке колонок схемы.
type Vector []Value

// Numbers возвращает числовую часть вектора.
func (v Vector) Numbers() []float64 {
	out := make([]float64, len(v))
	for i, val := range v {
		out[i] = val.Number
	}
	return out
}

// Num создаёт числовое значение.
func Num(x float64) Value { return Value{Number: x} }

// Cat создаёт категориальное значение.
func Cat(s string) Value { return Value{Category: s} }
