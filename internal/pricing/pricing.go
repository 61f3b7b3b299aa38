package pricing

// FinalPrice は税込単価を返す。
// 丸めはしない（表示側でフォーマットする）。
func FinalPrice(basePrice float64, ivaPercent float64) float64 {
	return basePrice + basePrice*ivaPercent/100
}
