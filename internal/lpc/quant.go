package lpc

import (
	"math"

	"github.com/thesyncim/goals/internal/bitio"
)

// pc12 maps the companded index of the first two PARCOR coefficients
// (asi+64) to its reconstruction level at Q20.
var pc12 = [128]int32{
	-1048544, -1048288, -1047776, -1047008, -1045984, -1044704, -1043168, -1041376,
	-1039328, -1037024, -1034464, -1031648, -1028576, -1025248, -1021664, -1017824,
	-1013728, -1009376, -1004768, -999904, -994784, -989408, -983776, -977888,
	-971744, -965344, -958688, -951776, -944608, -937184, -929504, -921568,
	-913376, -904928, -896224, -887264, -878048, -868576, -858848, -848864,
	-838624, -828128, -817376, -806368, -795104, -783584, -771808, -759776,
	-747488, -734944, -722144, -709088, -695776, -682208, -668384, -654304,
	-639968, -625376, -610528, -595424, -580064, -564448, -548576, -532448,
	-516064, -499424, -482528, -465376, -447968, -430304, -412384, -394208,
	-375776, -357088, -338144, -318944, -299488, -279776, -259808, -239584,
	-219104, -198368, -177376, -156128, -134624, -112864, -90848, -68576,
	-46048, -23264, -224, 23072, 46624, 70432, 94496, 118816,
	143392, 168224, 193312, 218656, 244256, 270112, 296224, 322592,
	349216, 376096, 403232, 430624, 458272, 486176, 514336, 542752,
	571424, 600352, 629536, 658976, 688672, 718624, 748832, 779296,
	810016, 840992, 872224, 903712, 935456, 967456, 999712, 1032224,
}

// parcorVar is the Rice offset and parameter of one of the first 20
// coefficient indices.
type parcorVar struct {
	m int32
	s uint
}

// parcorVars holds the coefficient code tables selected by the header's
// coefficient table field (0..2).
var parcorVars = [3][20]parcorVar{
	{
		{-52, 4}, {-29, 5}, {-31, 4}, {19, 4}, {-16, 4}, {12, 3}, {-7, 3}, {9, 3}, {-5, 3}, {6, 3},
		{-4, 3}, {3, 3}, {-3, 2}, {3, 2}, {-2, 2}, {3, 2}, {-1, 2}, {2, 2}, {-1, 2}, {2, 2},
	},
	{
		{-58, 3}, {-42, 4}, {-46, 4}, {37, 5}, {-36, 4}, {29, 4}, {-29, 4}, {25, 4}, {-23, 4}, {20, 4},
		{-17, 4}, {16, 4}, {-12, 4}, {12, 3}, {-10, 4}, {7, 3}, {-4, 4}, {3, 3}, {-1, 3}, {1, 3},
	},
	{
		{-59, 3}, {-45, 5}, {-50, 4}, {38, 4}, {-39, 4}, {32, 4}, {-30, 4}, {25, 3}, {-23, 3}, {20, 3},
		{-20, 3}, {16, 3}, {-13, 3}, {10, 3}, {-7, 3}, {3, 3}, {0, 3}, {-1, 3}, {2, 3}, {-1, 2},
	},
}

// RawCoefTable is the coefficient table value that sends indices as raw
// 7-bit fields.
const RawCoefTable = 3

// Quantize maps PARCOR coefficients to indices in [-64, 63]. The first two
// are companded so that values near magnitude 1 keep resolution.
func Quantize(par []float64, asi []int32) {
	for i, p := range par {
		var v float64
		switch i {
		case 0:
			v = compand(p)
		case 1:
			v = compand(-p)
		default:
			v = math.Floor(p * 64)
		}
		asi[i] = clampIndex(v)
	}
}

func compand(p float64) float64 {
	if p < -1 {
		p = -1
	} else if p > 1 {
		p = 1
	}
	return math.Floor((math.Sqrt2*math.Sqrt(p+1) - 1) * 64)
}

func clampIndex(v float64) int32 {
	if math.IsNaN(v) {
		return 0
	}
	if v < -64 {
		return -64
	}
	if v > 63 {
		return 63
	}
	return int32(v)
}

// Dequantize reconstructs quantized PARCOR values at Q20 from indices.
func Dequantize(asi []int32, parq []int32) {
	for i, a := range asi {
		switch i {
		case 0:
			parq[i] = pc12[a+64]
		case 1:
			parq[i] = -pc12[a+64]
		default:
			parq[i] = a<<(Q-6) + 1<<(Q-7)
		}
	}
}

// Fallback writes the conservative predictor installed when coefficient
// conversion overflows and returns its order: 1 for adaptive order,
// len(asi) otherwise.
func Fallback(asi []int32, adaptive bool) int {
	clear(asi)
	if len(asi) > 0 {
		asi[0] = clampIndex(compand(-0.9))
	}
	if len(asi) > 1 {
		asi[1] = clampIndex(compand(0))
	}
	if adaptive {
		return min(1, len(asi))
	}
	return len(asi)
}

// EncodeCoefficients writes the coefficient indices with the given table.
func EncodeCoefficients(w *bitio.Writer, asi []int32, table int) {
	if table == RawCoefTable {
		for _, a := range asi {
			w.WriteBits(uint32(a+64), 7)
		}
		return
	}
	vars := &parcorVars[table]
	for i, a := range asi {
		switch {
		case i < 20:
			w.WriteRice(a-vars[i].m, vars[i].s)
		case i < 127:
			w.WriteRice(a-int32(i&1), 2)
		default:
			w.WriteRice(a, 1)
		}
	}
}

// DecodeCoefficients reads len(asi) coefficient indices. Out of range
// values are clamped so that corrupt input cannot index outside pc12.
func DecodeCoefficients(r *bitio.Reader, asi []int32, table int) {
	if table == RawCoefTable {
		for i := range asi {
			asi[i] = int32(r.ReadBits(7)) - 64
		}
		return
	}
	vars := &parcorVars[table]
	for i := range asi {
		var a int32
		switch {
		case i < 20:
			a = vars[i].m + r.ReadRice(vars[i].s)
		case i < 127:
			a = int32(i&1) + r.ReadRice(2)
		default:
			a = r.ReadRice(1)
		}
		asi[i] = clampIndex(float64(a))
	}
}

// CoefficientBits returns the cost of coding index i with value a.
func CoefficientBits(i int, a int32, table int) int {
	if table == RawCoefTable {
		return 7
	}
	switch {
	case i < 20:
		v := &parcorVars[table][i]
		return bitio.RiceBits(a-v.m, v.s)
	case i < 127:
		return bitio.RiceBits(a-int32(i&1), 2)
	}
	return bitio.RiceBits(a, 1)
}
