// Package calendar implements events.Calendar on top of the Google Calendar
// v3 API.
//
// Every call waits on a client side rate limiter, is traced as a client span
// and is counted in the google_api_operations metrics.
//
// Example usage:
//
//	conf, err := google.OAuthConfig("credentials.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := calendar.NewClientForAccount(ctx, "default", conf, google.NewFileTokenProvider())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mgr := events.NewManager(client)
package calendar
