package apistrings

const (
	/// Account Related Strings
	AccountNotFound  = "wallet account does not exist"
	InvalidAccountID = "entered account ID is invalid"
	NoBalanceYet     = "no balance has been observed for this account yet"

	/// History Related Strings
	InvalidPageInput  = "check 'page' or 'page_size' keys, invalid request"
	InvalidTimeWindow = "check 'from' or 'to' keys, expects RFC3339 timestamps"

	/// Manual Check Related Strings
	WalletUnreachable = "wallet provider could not be reached"
	WalletRejected    = "wallet provider rejected the balance request"

	/// Core Functionality Error
	ServerError = "a server error occurred, please try again later"
)
