package taskstub

type createTaskRequest struct {
	Task struct {
		Name        string `json:"name"`
		HTTPRequest struct {
			URL     string            `json:"url"`
			Body    string            `json:"body"`
			Headers map[string]string `json:"headers"`
		} `json:"httpRequest"`
		ScheduleTime string `json:"scheduleTime"`
	} `json:"task"`
}

type taskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
