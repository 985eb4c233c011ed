// Package quotes supplies the bedtime reminder one-liners shown alongside a
// schedule. Pools are split by tone so the caller can escalate.
package quotes

import "math/rand"

var supportive = []string{
	"Your brain cells are begging for a reboot. Give them what they deserve!",
	"Even superheroes need sleep. Time to recharge your superpowers!",
	"Tomorrow's success starts with tonight's rest. Let's go!",
	"Sleep isn't lazy - it's strategic. Champions rest well.",
	"Fajr is waiting for you. Be ready to meet it refreshed!",
	"Every hour of sleep is an investment in tomorrow's genius.",
	"Your future self will thank you for sleeping now.",
	"Even your phone needs charging. So do you!",
	"The night is for rest. The dawn is for conquest!",
	"Be kind to yourself. Go to sleep!",
}

var urgent = []string{
	"It's past your sleep window. The schedule knows. The schedule remembers.",
	"Every minute awake now is a minute stolen from tomorrow's Fajr.",
	"Your alarm clock is already plotting revenge. Sleep while you can.",
	"Still up? Bold choice. Your 4 AM self disagrees.",
	"Close the app. Close your eyes. In that order.",
	"This is not a drill. Your pillow has filed a missing person report.",
	"The sleep window is closing. Literally. Right now.",
	"Tomorrow-you is watching. Don't disappoint them.",
}

// Random draws from both pools.
func Random() string {
	all := len(supportive) + len(urgent)
	i := rand.Intn(all)
	if i < len(supportive) {
		return supportive[i]
	}
	return urgent[i-len(supportive)]
}

func Supportive() string {
	return supportive[rand.Intn(len(supportive))]
}

func Urgent() string {
	return urgent[rand.Intn(len(urgent))]
}
