package query

var Backoff = backoff
