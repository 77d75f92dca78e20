package forecasting

import "errors"

var ErrInvalidForecastConfig = errors.New("invalid forecast configuration")
