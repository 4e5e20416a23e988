package balance

import "fmt"

var (
	ErrAccountNotFound = fmt.Errorf("wallet account not found")
	ErrInvalidPage     = fmt.Errorf("page and page_size must be positive")
)
