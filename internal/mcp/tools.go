package mcp

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "get_week",
				"description": "Fetch the reconciled worklog week for the current user, bucketed by day. Defaults to the current ISO week.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"week": map[string]interface{}{"type": "string", "description": "ISO week like 2024-W05. Omit for the current week."},
					},
				},
			},
			map[string]interface{}{
				"name":        "add_worklog",
				"description": "Log time on an issue. The duration is normalized before submission (e.g. '2h 30m').",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"issue_key":  map[string]interface{}{"type": "string"},
						"started":    map[string]interface{}{"type": "string", "description": "Start timestamp, RFC 3339."},
						"time_spent": map[string]interface{}{"type": "string"},
					},
					"required": []string{"issue_key", "started", "time_spent"},
				},
			},
			map[string]interface{}{
				"name":        "edit_worklog",
				"description": "Update the start time and duration of an existing worklog.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"issue_key":  map[string]interface{}{"type": "string"},
						"worklog_id": map[string]interface{}{"type": "string"},
						"started":    map[string]interface{}{"type": "string", "description": "Start timestamp, RFC 3339."},
						"time_spent": map[string]interface{}{"type": "string"},
					},
					"required": []string{"issue_key", "worklog_id", "started", "time_spent"},
				},
			},
			map[string]interface{}{
				"name":        "delete_worklog",
				"description": "Remove a worklog from an issue.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"issue_key":  map[string]interface{}{"type": "string"},
						"worklog_id": map[string]interface{}{"type": "string"},
					},
					"required": []string{"issue_key", "worklog_id"},
				},
			},
			map[string]interface{}{
				"name":        "normalize_duration",
				"description": "Clean a free-form duration string into Jira time-spent syntax, e.g. '2h 30m!!' becomes '2h 30m'. An empty result means the input holds no valid duration.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"input": map[string]interface{}{"type": "string"},
					},
					"required": []string{"input"},
				},
			},
			map[string]interface{}{
				"name":        "find_issues",
				"description": "Search issues by free text for key completion, or list recently touched issues when the query is empty.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"query": map[string]interface{}{"type": "string"},
					},
				},
			},
		},
	}
}
