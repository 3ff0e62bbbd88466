package models

// Request and response payloads for the ramp service HTTP API. Shapes mirror
// the server contract; the client never invents fields the server does not
// echo back.

// SellInitiateRequest opens a sell order and asks for a quote.
type SellInitiateRequest struct {
	Token      string `json:"token"`
	Network    string `json:"network"`
	SellAmount string `json:"sellAmount"`
}

// SellPayoutRequest submits the fiat payout leg for an initiated order.
// PaymentID must be the one issued at initiation — the server deduplicates
// retried submissions by it.
type SellPayoutRequest struct {
	PaymentID     string `json:"paymentId"`
	BankName      string `json:"bankName"`
	BankCode      string `json:"bankCode"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}

// SellStatusResponse is the reconciliation poll answer for an order.
type SellStatusResponse struct {
	PaymentID  string      `json:"paymentId"`
	Status     string      `json:"status"`
	Settlement *Settlement `json:"settlement,omitempty"`
}

// AuthResponse is the common shape of sign-in, sign-up, OTP verification and
// token refresh responses.
type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *UserProfile `json:"user,omitempty"`
}

// SignInRequest authenticates an existing user.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest registers a new user.
type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// VerifyOTPRequest confirms the one-time code sent during sign-up.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// NairaBanksResponse is the bank directory payload.
type NairaBanksResponse struct {
	Banks []Bank `json:"banks"`
}

// APIError is the error envelope the server uses for 4xx business errors.
type APIError struct {
	Message string `json:"message"`
}
