package middleware

import (
	"net/http"

	"github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

// RateLimit throttles clients by IP using a formatted rate such as "1000-H".
// An empty rate disables limiting.
func RateLimit(formatted string) (func(http.Handler) http.Handler, error) {
	if formatted == "" {
		return func(next http.Handler) http.Handler { return next }, nil
	}
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	lim := limiter.New(memory.NewStore(), rate)
	mw := mhttp.NewMiddleware(lim,
		mhttp.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.RespondErrorWithCode(w, http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded, "Too many requests", nil)
		}),
		mhttp.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Rate limiter failure", nil, err)
		}),
	)
	return mw.Handler, nil
}
