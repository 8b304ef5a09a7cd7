package service

import "errors"

var (
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrForbidden          = errors.New("not allowed to access this resource")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")

	ErrContactNotFound = errors.New("contact not found")

	ErrCarNotFound      = errors.New("car not found")
	ErrPlateTaken       = errors.New("license plate already registered")
	ErrInvalidDailyRate = errors.New("daily_rate must be greater than 0")
	ErrCarUnavailable   = errors.New("car is not available")
	ErrCarAlreadyBooked = errors.New("car is already booked for these dates")

	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("booking status change not allowed")

	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("amount must be greater than 0")
	ErrInvalidTxStatus     = errors.New("invalid transaction status")
	ErrInsufficientFunds   = errors.New("insufficient balance")
	ErrSelfTransfer        = errors.New("cannot transfer to yourself")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrReferenceTaken      = errors.New("reference already belongs to another transaction")
	ErrTransactionSettled  = errors.New("transaction already settled with a different status")
	ErrPaymentGateway      = errors.New("payment gateway unavailable")

	ErrChatUpstream = errors.New("chat provider request failed")
)
