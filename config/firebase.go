package config

import "os"

// FirebaseServiceAccountKeyPath points at the JSON key used by the FCM client.
var FirebaseServiceAccountKeyPath = firebaseKeyPath()

func firebaseKeyPath() string {
	if p := os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY"); p != "" {
		return p
	}
	return "config/firebase-service-account.json"
}
