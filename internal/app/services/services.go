package services

// Services defined in this package:
// - AuthService: registration, login, token lifecycle
// - CourseService: course CRUD, join by access code, member listing
// - NoteService: note CRUD, versioned updates, version history
// - ViewService: views within courses
// - GroupService: collaboration groups and group membership
// - ScaffoldService: scaffold prompt templates
// - NotificationService: per-profile notification feed
// - AdminService: teacher applications and review
// - AnalysisService: AI feedback adapter flow
