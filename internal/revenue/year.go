package revenue

// ROCOffset is the difference between the common era year and the ROC year.
const ROCOffset = 1911

// ToROC converts an AD year (2024) to a ROC year (113).
func ToROC(adYear int) int {
	return adYear - ROCOffset
}

// ToAD converts a ROC year (113) to an AD year (2024).
func ToAD(rocYear int) int {
	return rocYear + ROCOffset
}
