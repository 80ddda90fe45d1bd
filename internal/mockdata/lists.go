package mockdata

var firstNames = []string{
	"Alice", "Bob", "Charlie", "David", "Emma", "Frank", "Grace",
	"Helen", "Ivan", "Julia", "Kevin", "Laura", "Mike", "Nina",
	"Oliver", "Penny", "Quentin", "Rachel", "Steve", "Tina",
	"Ursula", "Victor", "Wendy", "Xavier", "Yasmine", "Zack",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Jones", "Brown", "Davis", "Miller",
	"Wilson", "Moore", "Taylor", "Anderson", "Thomas", "Jackson", "White",
	"Harris", "Martin", "Thompson", "Garcia", "Martinez", "Robinson",
	"Clark", "Rodriguez", "Lewis", "Lee", "Walker", "Hall",
}

var avatarURLs = []string{
	"https://images.pexels.com/photos/415829/pexels-photo-415829.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/2379005/pexels-photo-2379005.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/1222271/pexels-photo-1222271.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/6386956/pexels-photo-6386956.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/614810/pexels-photo-614810.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/1239291/pexels-photo-1239291.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/1681010/pexels-photo-1681010.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/91227/pexels-photo-91227.jpeg?auto=compress&cs=tinysrgb&w=150",
}

var chatPreviews = []string{
	"Hey, how are you?",
	"Can we talk later?",
	"Did you see the news today?",
	"I'll be there in 10 minutes",
	"What do you think about the new update?",
	"Let's meet tomorrow",
	"Thanks for your help!",
	"I'm busy right now, can I call you later?",
	"Happy birthday! 🎉",
	"Check out this link",
	"Are you free this weekend?",
	"The meeting is canceled",
	"Don't forget to bring your laptop",
	"I just sent you an email",
	"Can you help me with something?",
}

var greetings = []string{
	"Hey there!",
	"Hi, how are you?",
	"Hello, got a minute?",
	"Hey, are you free to chat?",
	"What's up?",
}

var smallTalk = []string{
	"How's your day going?",
	"Did you finish that project?",
	"I was thinking about our discussion yesterday.",
	"Have you had lunch yet?",
	"Can you send me the files we talked about?",
	"Are you coming to the meeting tomorrow?",
	"I need some advice on something.",
	"Let's catch up this weekend if you're free.",
	"What do you think about the new policy?",
	"I just finished reading that book you recommended!",
	"Did you watch the game last night?",
	"I'm really excited about the upcoming changes.",
	"That makes sense, I'll check it out.",
}

var closings = []string{
	"I have to go now, talk later!",
	"Thanks for the chat!",
	"Let's continue this tomorrow.",
	"I'll get back to you on this.",
	"Got to run, bye for now!",
}

var contactStatuses = []string{
	"Available",
	"At work",
	"In a meeting",
	"Busy",
	"On vacation",
	"Do not disturb",
	"Studying",
	"At the gym",
}

// Replies is the fixed set a counterparty answers a sent message with.
var Replies = []string{
	"Sure, that sounds good!",
	"I'll get back to you soon.",
	"Thanks for letting me know.",
	"Can we discuss this later?",
	"That's interesting!",
	"I'm not sure about that.",
	"Let me think about it.",
	"Great idea!",
	"How about meeting tomorrow?",
	"I'm busy right now, can we talk later?",
}

// Weighted distributions. Sample data only; nothing depends on the exact numbers.
var (
	messageStatusWeights = []float64{0.05, 0.15, 0.3, 0.5}
	callStatusWeights    = []float64{0.05, 0.6, 0.25, 0.1}
)
