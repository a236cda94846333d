package gallery

import "math"

const (
	BaseUnitMobile  = 150
	BaseUnitDesktop = 250
)

// HeightRatio maps an asset id to a stable ratio in [1.0, 1.8].
func HeightRatio(id int) float64 {
	m := (id * 7) % 9
	if m < 0 {
		m += 9
	}
	return 1.0 + float64(m)/10
}

// CardHeight is the desired card height for an asset id on the given viewport class.
func CardHeight(id int, mobile bool) int {
	base := BaseUnitDesktop
	if mobile {
		base = BaseUnitMobile
	}
	return int(math.Round(HeightRatio(id) * float64(base)))
}
