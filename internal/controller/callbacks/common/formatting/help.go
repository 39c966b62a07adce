package formatting

import "github.com/AngelinAnto/OneAdmit/internal/model"

const studentHelp = "🎓 <b>Student commands</b>\n" +
	"/colleges [filters] - Discover colleges, e.g. <code>/colleges course=B.Com; city=Chennai; hostel</code>\n" +
	"/college &lt;code&gt; - College details\n" +
	"/email &lt;address&gt; - Set your email\n" +
	"/profile - Fill in your profile\n" +
	"/apply &lt;code&gt; &lt;course&gt; [hostel] [scholarship] - Apply\n" +
	"/applications - Your applications\n" +
	"/slots &lt;code&gt; - Upcoming exam slots\n" +
	"/book &lt;application&gt; &lt;slot&gt; - Book an exam slot\n" +
	"/cancelslot &lt;application&gt; - Cancel an exam slot\n" +
	"/announcements - News from your colleges\n" +
	"Send a photo with the caption /photo to set your profile photo.\n"

const collegeHelp = "🏛 <b>College commands</b>\n" +
	"/newcollege - Create your college profile\n" +
	"/editcollege &lt;field&gt; &lt;value&gt; - Edit a profile field\n" +
	"/dashboard - Summary\n" +
	"/inbox - Applications to review\n" +
	"/setstatus &lt;application&gt; &lt;status&gt; - Change status\n" +
	"/setpayment &lt;application&gt; &lt;status&gt; [payment id] [amount] - Record a payment\n" +
	"/setresult &lt;application&gt; &lt;YYYY-MM-DD&gt; - Set the result date\n" +
	"/history &lt;application&gt; - Status changes\n" +
	"/addslot &lt;YYYY-MM-DD&gt; &lt;HH:MM&gt; &lt;HH:MM&gt; &lt;seats&gt; &lt;venue&gt; - New exam slot\n" +
	"/myslots - Manage exam slots\n" +
	"/deleteslot &lt;slot&gt; - Delete an exam slot\n" +
	"/announce &lt;type&gt; &lt;title&gt; | &lt;content&gt; - Publish an announcement\n" +
	"/unannounce &lt;id&gt; - Withdraw an announcement\n" +
	"/export - Applications as an Excel file\n" +
	"Send a photo with the caption /logo to set your college logo.\n"

const commonHelp = "\n/switch - Change account type\n" +
	"/cancel - Stop the current dialog\n" +
	"/help - This message\n"

// HelpText lists the commands available to the user's account type
func HelpText(user *model.User) string {
	switch {
	case user.IsStudent():
		return studentHelp + commonHelp
	case user.IsCollegeAdmin():
		return collegeHelp + commonHelp
	}
	return "Choose how you use OnlyAdmit with /role.\n\n" + studentHelp + "\n" + collegeHelp + commonHelp
}
