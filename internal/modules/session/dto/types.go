package dto

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SessionOutput struct {
	Authenticated bool        `json:"authenticated"`
	Token         string      `json:"-"`
	User          *UserOutput `json:"user,omitempty"`
}

type StartupOutput struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
