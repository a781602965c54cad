package leafdex

import "errors"

// Policy outcomes. These are user-actionable rejections, distinct from
// infrastructure failures; the HTTP layer maps each to a specific
// status code. Wrap them with fmt.Errorf("%w: ...") so errors.Is keeps
// working across package boundaries.
var (
	// ErrNotAPlant means the classifier did not recognize a plant.
	ErrNotAPlant = errors.New("not a plant")

	// ErrLowConfidence means identification confidence is below the
	// configured threshold.
	ErrLowConfidence = errors.New("identification confidence too low")

	// ErrScreenSuspected means the photo looks like a screen or a
	// photo of another photo.
	ErrScreenSuspected = errors.New("photo of a screen or print suspected")

	// ErrAnalysisFailed means the classifier was unreachable or its
	// output did not validate. Distinct from ErrNotAPlant.
	ErrAnalysisFailed = errors.New("image analysis failed")

	// ErrInvalidCareImage means the checkup photo was rejected
	// (blurry, dark, no visible plant).
	ErrInvalidCareImage = errors.New("care photo rejected")

	// ErrDuplicateDiscovery means the same user already logged this
	// species within the geofence radius.
	ErrDuplicateDiscovery = errors.New("already discovered here")

	// ErrPlantNotFound means the referenced plant does not exist.
	ErrPlantNotFound = errors.New("plant not found")

	// ErrAlreadyCaretaker means a caretaker link already exists for
	// this user and plant.
	ErrAlreadyCaretaker = errors.New("already taking care of this plant")

	// ErrUserExists means the profile is already registered.
	ErrUserExists = errors.New("user already registered")

	// ErrUsernameTaken means the requested username is in use.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUnauthorized means the bearer credential did not verify.
	ErrUnauthorized = errors.New("unauthorized")
)
