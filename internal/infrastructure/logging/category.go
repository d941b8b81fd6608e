package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	IO              Category = "IO"
	Internal        Category = "Internal"
	Mongo           Category = "Mongo"
	RabbitMQ        Category = "RabbitMQ"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
	WebSocket       Category = "WebSocket"
)

const (
	// General
	Startup         SubCategory = "Startup"
	RateLimiting    SubCategory = "RateLimiting"
	ExternalService SubCategory = "ExternalService"

	// WebSocket
	Connect    SubCategory = "Connect"
	Disconnect SubCategory = "Disconnect"
	Presence   SubCategory = "Presence"
	Chat       SubCategory = "Chat"
	Dispatch   SubCategory = "Dispatch"

	// RabbitMQ
	Publish SubCategory = "Publish"
	Consume SubCategory = "Consume"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	HostIp       ExtraKey = "HostIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	BodySize     ExtraKey = "BodySize"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	RequestBody  ExtraKey = "RequestBody"
	ResponseBody ExtraKey = "ResponseBody"
	ErrorMessage ExtraKey = "ErrorMessage"
)
