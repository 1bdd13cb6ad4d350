package client

import (
	"fmt"

	"github.com/dmitrijs2005/otpkeeper/internal/common"
)

var (
	ErrUnavailable  = common.ErrStoreUnavailable
	ErrUnauthorized = common.ErrorUnauthorized

	// ErrNotLoggedIn is returned by account calls made before Login. It
	// matches ErrUnauthorized.
	ErrNotLoggedIn = fmt.Errorf("%w: not logged in", common.ErrorUnauthorized)
)
