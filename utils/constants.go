// File: utils/constants.go
package utils

import "time"

// WeatherCachePrefix is the prefix used for Redis weather cache keys.
const WeatherCachePrefix = "weather:"

// ChatHistoryPrefix is the prefix used for Redis chat window keys.
const ChatHistoryPrefix = "chat:hist:"

// ChatHistoryTTL is how long an idle chat window stays cached.
const ChatHistoryTTL = 30 * time.Minute

// DefaultSessionID is used when a chat request carries no session id.
const DefaultSessionID = "default"
