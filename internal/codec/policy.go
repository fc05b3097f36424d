package codec

// Encoding is the image-encoding mode a session negotiates via the
// ECD command.
type Encoding uint32

const (
	EncodingAuto Encoding = iota
	EncodingPNG
	EncodingJPEG
	EncodingWebP
)

func (e Encoding) String() string {
	switch e {
	case EncodingAuto:
		return "auto"
	case EncodingPNG:
		return "png"
	case EncodingJPEG:
		return "jpeg"
	case EncodingWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// ParseEncoding maps the raw ECD integer argument to an Encoding.
// Out-of-range values are rejected rather than silently clamped, so
// the caller can treat them as a malformed command per the parser's
// "skip, don't terminate" rule.
func ParseEncoding(raw int) (Encoding, bool) {
	switch raw {
	case int(EncodingAuto):
		return EncodingAuto, true
	case int(EncodingPNG):
		return EncodingPNG, true
	case int(EncodingJPEG):
		return EncodingJPEG, true
	case int(EncodingWebP):
		return EncodingWebP, true
	default:
		return 0, false
	}
}

// Named quality levels. QLT accepts any value in [1,100] verbatim;
// these constants are the fixed points the rest of the pipeline
// compares against and resets to.
const (
	QualityLow     = 10
	QualityMedium  = 25
	QualityHigh    = 50
	QualityHigher  = 75
	QualityHighest = 100
)

// Named quantities. QNT accepts any of these; the rate controller
// treats every other value (including 100) as "emit everything".
const (
	Quantity5   = 5
	Quantity10  = 10
	Quantity20  = 20
	Quantity25  = 25
	Quantity50  = 50
	Quantity100 = 100
)

// Policy holds the mutable per-session image and display settings
// driven by ECD/QLT/QNT/SCA/RSZ commands.
type Policy struct {
	Encoding     Encoding
	Quality      int
	Quantity     int
	ScaleDisplay bool
	ClientW      int
	ClientH      int
}

// NewPolicy returns the documented defaults: AUTO encoding, HIGH
// quality, emit-everything quantity, scaling off.
func NewPolicy() Policy {
	return Policy{
		Encoding: EncodingAuto,
		Quality:  QualityHigh,
		Quantity: Quantity100,
	}
}

// EffectiveQuality computes the quality to pass into the encoder
// before the actual format is known: PNG-selected policies force
// HIGHEST outright; otherwise fullscreen frames force HIGHER; else
// the policy's configured quality is used as-is. When policy.Encoding
// is AUTO and the encoder ends up choosing PNG, the caller must
// re-apply QualityHighest to the reported metadata after encoding —
// EffectiveQuality cannot know that outcome in advance.
func EffectiveQuality(policyEncoding Encoding, fullscreen bool, configured int) int {
	if policyEncoding == EncodingPNG {
		return QualityHighest
	}
	if fullscreen {
		return QualityHigher
	}
	return configured
}
