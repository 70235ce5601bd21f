// Package cli is the interactive BuenCuidar client: a small REPL over the
// job board, document verification, avatar and appointment services.
//
// Commands
//
//	jobs            show the currently visible job board
//	watch           follow the board until Enter is pressed
//	docs            list submitted verification documents
//	upload          submit a verification document
//	avatar          change the profile picture
//	request         request an appointment with a care plan
//	plan            decode the care plan from a details text
//	token           store the session token
//	whoami          show the authenticated user
//	exit            leave
package cli
