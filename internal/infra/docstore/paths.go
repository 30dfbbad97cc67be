package docstore

// UsersCollection is the root collection enumerated on every run.
const UsersCollection = "users"

const (
	usersCollection         = UsersCollection
	profileCollection       = "profile"
	profileDocID            = "main"
	devicesCollection       = "devices"
	notificationsCollection = "notifications"
	reminderStateDocID      = "reminderState"

	profileFieldTimeZone = "timeZone"
	profileFieldQuests   = "quests"

	reminderFieldTitle = "title"
	reminderFieldOn    = "reminderOn"
	reminderFieldTime  = "reminderTime"
	reminderFieldDays  = "reminderDays"

	deviceFieldToken       = "token"
	deviceFieldPlatform    = "platform"
	deviceFieldPushEnabled = "pushEnabled"

	stateFieldLastSlotKey    = "lastSlotKey"
	stateFieldDueCount       = "dueCount"
	stateFieldSentCount      = "sentCount"
	stateFieldTimeZone       = "timeZone"
	stateFieldUpdatedAt      = "updatedAt"
	stateFieldClaimSlotKey   = "claimSlotKey"
	stateFieldClaimRunID     = "claimRunId"
	stateFieldClaimExpiresAt = "claimExpiresAt"
)
