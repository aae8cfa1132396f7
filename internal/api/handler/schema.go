package handler

// --- Response envelopes ---

// dataResponse wraps every successful payload-bearing response.
type dataResponse struct {
	Data any `json:"data"`
}

// messageResponse is returned when an operation succeeds without a payload.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse mirrors the envelope produced by the central error handler;
// it exists here for the swagger annotations on the handlers.
type errorResponse struct {
	Errors map[string]string `json:"errors"`
}

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=50"`
}

type newUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"required,min=1,max=50"`
	Role     string `json:"role"     validate:"required,oneof=ADMIN STUDENT"`
}

type updateUserRequest struct {
	ID       string  `json:"id"                 validate:"required"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=1,max=50"`
	Role     *string `json:"role,omitempty"     validate:"omitempty,oneof=ADMIN STUDENT"`
}
