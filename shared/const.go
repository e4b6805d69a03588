package shared

const (
	UserID    = "user_id"
	RequestID = "request_id"

	EndpointLessonResult = "lesson_result"
	EndpointAPIGeneral   = "api_general"
)
