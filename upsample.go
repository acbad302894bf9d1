package multirate

// Upsample inserts factor-1 zeros after every sample of x.
//
// The result has length len(x)*factor, with out[i*factor] = x[i] and every other
// position exactly zero. A factor of 1 returns a copy of x.
func Upsample[F Float](x []F, factor int) ([]F, error) {
	if err := checkSignal(len(x)); err != nil {
		return nil, err
	}
	if err := checkFactor("upsampling", factor); err != nil {
		return nil, err
	}

	y := make([]F, len(x)*factor)
	for i, v := range x {
		y[i*factor] = v
	}
	return y, nil
}
