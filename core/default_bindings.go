package core

// View scopes.
const (
	ScopeAlarm     = "view:alarm"
	ScopeStopwatch = "view:stopwatch"
	ScopeTimer     = "view:timer"
	ScopeWeather   = "view:weather"
)

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: []string{"view:*"}},
		{Keys: []string{"1"}, Action: "switch-view-1", Description: "alarm", Scopes: []string{"view:*"}},
		{Keys: []string{"2"}, Action: "switch-view-2", Description: "stopwatch", Scopes: []string{"view:*"}},
		{Keys: []string{"3"}, Action: "switch-view-3", Description: "timer", Scopes: []string{"view:*"}},
		{Keys: []string{"4"}, Action: "switch-view-4", Description: "weather", Scopes: []string{"view:*"}},
		{Keys: []string{"g"}, Action: "open-route-picker", Description: "go to", Scopes: []string{"view:*"}},
		{Keys: []string{"o"}, Action: "toggle-orientation", Description: "auto/manual", Scopes: []string{"view:*"}},
		{Keys: []string{"H"}, Action: "open-history", Description: "history", Scopes: []string{"view:*"}},
		{Keys: []string{"ctrl+k"}, Action: "open-command-palette", Description: "commands", Scopes: []string{"view:*"}},

		{Keys: []string{"e"}, Action: "alarm-edit", Description: "set time", Scopes: []string{ScopeAlarm}},
		{Keys: []string{"a"}, Action: "alarm-arm", Description: "arm/cancel", Scopes: []string{ScopeAlarm}},
		{Keys: []string{"z"}, Action: "alarm-snooze", Description: "snooze", Scopes: []string{ScopeAlarm}},
		{Keys: []string{"enter"}, Action: "alarm-save", Description: "save", Scopes: []string{"input:alarm"}},
		{Keys: []string{"esc"}, Action: "input-cancel", Description: "cancel", Scopes: []string{"input:alarm", "input:weather"}},

		{Keys: []string{"space", " "}, Action: "stopwatch-toggle", Description: "start/pause", Scopes: []string{ScopeStopwatch}},
		{Keys: []string{"l"}, Action: "stopwatch-lap", Description: "lap", Scopes: []string{ScopeStopwatch}},
		{Keys: []string{"r"}, Action: "stopwatch-reset", Description: "reset", Scopes: []string{ScopeStopwatch}},

		{Keys: []string{"space", " "}, Action: "timer-toggle", Description: "start/pause", Scopes: []string{ScopeTimer}},
		{Keys: []string{"+", "="}, Action: "timer-inc", Description: "+1 min", Scopes: []string{ScopeTimer}},
		{Keys: []string{"-"}, Action: "timer-dec", Description: "-1 min", Scopes: []string{ScopeTimer}},
		{Keys: []string{"r"}, Action: "timer-reset", Description: "reset", Scopes: []string{ScopeTimer}},

		{Keys: []string{"/", "s"}, Action: "weather-search", Description: "search", Scopes: []string{ScopeWeather}},
		{Keys: []string{"r"}, Action: "weather-refresh", Description: "refresh", Scopes: []string{ScopeWeather}},
		{Keys: []string{"y"}, Action: "weather-accept", Description: "use suggestion", Scopes: []string{ScopeWeather}},
		{Keys: []string{"enter"}, Action: "weather-submit", Description: "search", Scopes: []string{"input:weather"}},

		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: []string{"screen:picker", "screen:command", "screen:history"}},
		{Keys: []string{"enter"}, Action: "select", Description: "select", Scopes: []string{"screen:picker", "screen:command"}},
	}
}
