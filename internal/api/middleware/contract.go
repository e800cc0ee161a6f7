package middleware

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RateLimitMetrics счётчик отклонённых лимитером запросов
type RateLimitMetrics interface {
	IncRateLimited(route string)
}
