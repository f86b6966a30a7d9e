package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the user shape returned to clients; the password hash
// never leaves the server.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}

type Doctor struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Specialty       string    `json:"specialty"`
	YearsExperience int       `json:"years_experience"`
	CreatedAt       time.Time `json:"created_at"`
}

type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type Appointment struct {
	ID              string    `json:"id"`
	DoctorID        string    `json:"doctor_id"`
	ServiceID       string    `json:"service_id"`
	UserID          string    `json:"user_id"`
	PatientName     string    `json:"patient_name"`
	AppointmentDate time.Time `json:"appointment_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// AppointmentView is an appointment joined with its doctor and service,
// as served by the appointment listings.
type AppointmentView struct {
	Appointment
	DoctorName      string `json:"doctor_name"`
	DoctorSpecialty string `json:"doctor_specialty"`
	ServiceName     string `json:"service_name"`
}
