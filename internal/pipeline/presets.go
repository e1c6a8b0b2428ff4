package pipeline

// globalAllowedMIME is the platform-wide allow-list applied to every field
// that does not narrow it further.
var globalAllowedMIME = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"video/mp4",
	"video/quicktime",
	"video/webm",
	"application/pdf",
	"audio/mpeg",
	"audio/ogg",
	"audio/wav",
}

// imageOnlyMIME is the narrower list for roles that must be a still image.
var imageOnlyMIME = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
}

// FieldSpec declares the constraints for one multipart field.
type FieldSpec struct {
	Role     string
	MaxCount int
	Required bool
	// Allowed overrides the global MIME allow-list when non-nil.
	Allowed []string
}

// Preset pairs a route's field roles with their constraints. Presets are
// declarative data; every preset flows through the same orchestrator path.
type Preset struct {
	Name   string
	Fields []FieldSpec
}

// Presets returns the fixed upload presets, keyed by name.
func Presets() map[string]Preset {
	return map[string]Preset{
		"profile": {
			Name: "profile",
			Fields: []FieldSpec{
				{Role: "profilePicture", MaxCount: 1, Required: true, Allowed: imageOnlyMIME},
			},
		},
		"cover": {
			Name: "cover",
			Fields: []FieldSpec{
				{Role: "coverPhoto", MaxCount: 1, Required: true},
			},
		},
		"post": {
			Name: "post",
			Fields: []FieldSpec{
				{Role: "media", MaxCount: 10, Required: true},
			},
		},
		"story": {
			Name: "story",
			Fields: []FieldSpec{
				{Role: "media", MaxCount: 1, Required: true},
			},
		},
		"kyc": {
			Name: "kyc",
			Fields: []FieldSpec{
				{Role: "idFront", MaxCount: 1, Required: true},
				{Role: "idBack", MaxCount: 1, Required: true},
				{Role: "selfie", MaxCount: 1, Required: true},
			},
		},
		"payment": {
			Name: "payment",
			Fields: []FieldSpec{
				{Role: "screenshot", MaxCount: 1, Required: true},
			},
		},
		"message": {
			Name: "message",
			Fields: []FieldSpec{
				{Role: "attachment", MaxCount: 1, Required: true},
			},
		},
	}
}
