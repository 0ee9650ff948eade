package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	msgInvalidRequestBody      = "invalid request body"
	msgContentTypeJSONRequired = "Content-Type must be application/json"

	msgInvalidCredentials  = "invalid email or password"
	msgPasswordProcessFail = "failed to process password"
	msgCreateAccountFail   = "failed to create account"
	msgGenerateTokenFail   = "failed to generate token"
	msgEmailAlreadyExists  = "an account with this email already exists"
	msgResetRequested      = "if the account exists, a reset email has been sent"
	msgPasswordChanged     = "password changed"
	msgResetTokenInvalid   = "reset token is invalid or expired"
	msgAccountDeleted      = "account deleted"

	msgInvalidOrderID      = "invalid order id"
	msgOrderNotFound       = "order not found"
	msgCreateOrderFail     = "failed to create order"
	msgListOrdersFail      = "failed to list orders"
	msgInvalidOrderStatus  = "invalid order status"
	msgOrderCancelled      = "order cancelled"
	msgListEventsFail      = "failed to list security events"
	msgInvalidQueryParam   = "invalid query parameter"
	msgCurrentPasswordFail = "current password is incorrect"
)
