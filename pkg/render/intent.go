package render

// Style classifies what kind of picture the source is. Produced by an
// external classifier; unknown values are tolerated.
type Style string

// Known image styles.
const (
	StylePhotography  Style = "photography"
	StyleScreenshot   Style = "screenshot"
	StyleMeme         Style = "meme"
	StyleIllustration Style = "illustration"
	StyleComic        Style = "comic"
	StyleDiagram      Style = "diagram"
	StyleMixed        Style = "mixed"
)

// Purpose classifies why the picture was posted.
type Purpose string

// Known post purposes.
const (
	PurposeHumor         Purpose = "humor"
	PurposeInformational Purpose = "informational"
	PurposeArtistic      Purpose = "artistic"
	PurposeShowcase      Purpose = "showcase"
	PurposeSocial        Purpose = "social"
	PurposeReaction      Purpose = "reaction"
	PurposeOthers        Purpose = "others"
)

// Decision is the classifier's use-or-skip verdict.
type Decision string

// Decisions.
const (
	DecisionUse  Decision = "use"
	DecisionSkip Decision = "skip"
)

// ResizeStrategy is the classifier's requested geometry treatment.
type ResizeStrategy string

// Resize strategies.
const (
	ResizeStretch  ResizeStrategy = "stretch"
	ResizeCrop     ResizeStrategy = "crop"
	ResizePadWhite ResizeStrategy = "pad_white"
	ResizePadBlack ResizeStrategy = "pad_black"
)

// Intent is the semantic record handed in by the upstream classifier.
// It is untrusted: every numeric field is range-checked before use, and
// out-of-range values degrade to safe defaults rather than aborting.
type Intent struct {
	Style          Style          `json:"image_style"`
	Purpose        Purpose        `json:"post_purpose"`
	Decision       Decision       `json:"decision"`
	ResizeStrategy ResizeStrategy `json:"resize_strategy"`

	// Advisory processing parameters. Valid ranges: gamma 1.0-2.4,
	// sharpen 0.0-2.0, dither 0-100.
	Gamma   float64 `json:"gamma"`
	Sharpen float64 `json:"sharpen"`
	Dither  int     `json:"dither"`

	// IncludeTitle asks for the post title to be composited onto the
	// bottom of the raster. Title itself comes from the feed entry, not
	// the classifier.
	IncludeTitle bool   `json:"include_title"`
	Title        string `json:"-"`
}
