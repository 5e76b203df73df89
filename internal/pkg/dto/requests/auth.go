package requests

type RegisterUser struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,password"`
	PhoneNumber    string `json:"phone" validate:"omitempty,phone_number"`
	Role           string `json:"role" validate:"required,oneof=community_worker nurse doctor admin"`
	LicenseNumber  string `json:"licenseNumber"`
	Specialization string `json:"specialization" validate:"required_if=Role doctor"`
	HashedPassword string `json:"-"`
}

type LoginUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
