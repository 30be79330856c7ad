package entity

// NormalizePcsPerUnit returns p, or 1 when p is not positive.
func NormalizePcsPerUnit(p int) int {
	if p <= 0 {
		return 1
	}
	return p
}

// TotalPieces converts a quantity in selling units into pieces.
func TotalPieces(qtyInUnits, pcsPerUnit int) int {
	return qtyInUnits * NormalizePcsPerUnit(pcsPerUnit)
}
