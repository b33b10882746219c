package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Paths served by the backend.
const (
	PathLogin  = "/api/login"
	PathSignup = "/api/signup"
	PathAdd    = "/api/add"
)

// Identifier accepts either a JSON string or a JSON number and keeps the
// textual form.  The backend is not consistent about which one it sends.
type Identifier string

// UnmarshalJSON implements json.Unmarshaler.
func (id *Identifier) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = Identifier(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = Identifier(n.String())
	return nil
}

// String returns the identifier text.
func (id Identifier) String() string { return string(id) }

// Int64 parses the identifier as a base-10 integer.
func (id Identifier) Int64() (int64, error) { return strconv.ParseInt(string(id), 10, 64) }

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the subset of the login reply the client consumes.
type LoginResponse struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	Role    string     `json:"role"`
	ID      Identifier `json:"id"`
	Message string     `json:"message"`
}

// EmployeeRequest is the body of both POST /api/signup and POST /api/add.
type EmployeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SignupResponse is the signup reply.  Success is optional: older backends
// only send a message with a 2xx status.
type SignupResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// Employee is the record returned by POST /api/add.
type Employee struct {
	ID    Identifier `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  string     `json:"role"`
}

// UnmarshalJSON accepts document-store style "_id" keys as well as "id".
func (e *Employee) UnmarshalJSON(b []byte) error {
	type plain Employee
	var aux struct {
		plain
		AltID Identifier `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*e = Employee(aux.plain)
	if e.ID == "" {
		e.ID = aux.AltID
	}
	return nil
}

// AddEmployeeResponse is the add-employee reply.
type AddEmployeeResponse struct {
	Success  bool      `json:"success"`
	Employee *Employee `json:"employee"`
	Message  string    `json:"message"`
}

// errorBody is the shape of a non-2xx reply.
type errorBody struct {
	Message string `json:"message"`
}
