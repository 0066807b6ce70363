package flow

const (
	// WideBreakpointPx is the viewport width at and above which two-column
	// sections apply the height lock. Below it the columns stack and the
	// lock releases.
	WideBreakpointPx = 1024.0

	// HangAllowancePx lets the text column run slightly past the image
	// bottom before it counts as tall enough, absorbing sub-pixel rounding.
	HangAllowancePx = 12.0

	// placeholderAspect is the box shape assumed for an empty slot; the lock
	// applies to whatever box is present, placeholder included.
	placeholderAspect = 4.0 / 3.0
)

// Measurer reports the rendered height of an image column. The browser
// implementation observes the actual box; server-side implementations derive
// a deterministic height so layout output stays reproducible.
type Measurer interface {
	MeasureImageHeight(slot ImageSlot, colWidthPx float64) float64
}

// AspectMeasurer computes height from the slot's aspect ratio (width/height).
// Slots without a known ratio, including empty placeholders, use the
// placeholder box shape.
type AspectMeasurer struct{}

func (AspectMeasurer) MeasureImageHeight(slot ImageSlot, colWidthPx float64) float64 {
	if colWidthPx <= 0 {
		return 0
	}
	aspect := slot.AspectRatio
	if aspect <= 0 {
		aspect = placeholderAspect
	}
	return colWidthPx / aspect
}

// FixedMeasurer always reports the same height. Test fake.
type FixedMeasurer struct {
	HeightPx float64
}

func (m FixedMeasurer) MeasureImageHeight(ImageSlot, float64) float64 { return m.HeightPx }

// HeightLockMinHeight returns the min-height to apply to the text column
// paired with an image of the given rendered height. Zero means unset: the
// lock releases entirely below the wide breakpoint so mobile stacking is
// unconstrained.
func HeightLockMinHeight(imageHeightPx, viewportWidthPx float64) float64 {
	if viewportWidthPx < WideBreakpointPx {
		return 0
	}
	if imageHeightPx <= 0 {
		return 0
	}
	return imageHeightPx + HangAllowancePx
}
