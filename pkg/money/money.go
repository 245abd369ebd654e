package money

import "math"

// Round2 округляет сумму до 2 знаков после запятой (half away from zero).
// Применяется только в точке отображения/применения суммы, не в промежуточных расчётах.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// NonNegative обрезает отрицательные значения до нуля
func NonNegative(amount float64) float64 {
	if amount < 0 {
		return 0
	}
	return amount
}

// Percent возвращает pct процентов от amount без округления
func Percent(amount, pct float64) float64 {
	return amount * pct / 100
}
