package mcc

// span returns the positions of a block of n samples a dependent entry
// changes. All reference taps stay inside the block.
func span(s *Side, n int) (begin, end int) {
	begin, end = 1, n-1
	if s.Mode == SixTap {
		if s.Lag < 0 {
			begin -= s.Lag
		} else {
			end -= s.Lag
		}
	}
	return begin, end
}

// prediction returns the rounded weighted sum of the reference taps at
// position i.
func prediction(s *Side, ref []int32, i int) int32 {
	y := int64(64)
	y += int64(weights[s.Weight[0]]) * int64(ref[i-1])
	y += int64(weights[s.Weight[1]]) * int64(ref[i])
	y += int64(weights[s.Weight[2]]) * int64(ref[i+1])
	if s.Mode == SixTap {
		j := i + s.Lag
		y += int64(weights[s.Weight[3]]) * int64(ref[j-1])
		y += int64(weights[s.Weight[4]]) * int64(ref[j])
		y += int64(weights[s.Weight[5]]) * int64(ref[j+1])
	}
	return int32(y >> 7)
}

// Subtract removes the prediction of entry s from the residual d using the
// reference residual ref.
func Subtract(d, ref []int32, s *Side) {
	if s.Mode == None {
		return
	}
	begin, end := span(s, len(d))
	for i := begin; i < end; i++ {
		d[i] -= prediction(s, ref, i)
	}
}

// Revert adds the prediction of entry s back to d.
func Revert(d, ref []int32, s *Side) {
	if s.Mode == None {
		return
	}
	begin, end := span(s, len(d))
	for i := begin; i < end; i++ {
		d[i] += prediction(s, ref, i)
	}
}

// RevertAll restores the residuals of every channel of a block. A channel's
// references are restored before the channel itself; a reference cycle is
// an error. Entries only apply to channels marked in coded, whose
// references must be coded as well.
func RevertAll(res [][]int32, sides [][]Side, coded []bool) error {
	state := make([]uint8, len(res))
	var revert func(c int) error
	revert = func(c int) error {
		switch state[c] {
		case 1:
			return ErrInvalidSide
		case 2:
			return nil
		}
		state[c] = 1
		for i := range sides[c] {
			ref := sides[c][i].Ref
			if ref == c {
				continue
			}
			if !coded[c] || !coded[ref] {
				return ErrInvalidSide
			}
			if err := revert(ref); err != nil {
				return err
			}
		}
		for i := len(sides[c]) - 1; i >= 0; i-- {
			s := &sides[c][i]
			if s.Ref != c {
				Revert(res[c], res[s.Ref], s)
			}
		}
		state[c] = 2
		return nil
	}
	for c := range res {
		if err := revert(c); err != nil {
			return err
		}
	}
	return nil
}
