package render

// RunStyle captures the run formatting applied to a paragraph.
type RunStyle struct {
	Bold bool
	// Size is in half-points, as stored in w:sz.
	Size int
	Font string
}

const (
	HeadingSize = 24
	BodySize    = 22

	CoverLetterFont = "Calibri"

	// Page margins in twentieths of a point.
	ResumeMargin      = 1080
	CoverLetterMargin = 1440
)

// StyleMap centralizes the formatting for each paragraph role.
var StyleMap = map[string]RunStyle{
	"sectionHeading": {
		Bold: true,
		Size: HeadingSize,
	},
	"body": {
		Size: BodySize,
	},
	"letterBody": {
		Size: BodySize,
		Font: CoverLetterFont,
	},
}
