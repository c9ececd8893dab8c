package digest

const slackFormatting = `Use Slack mrkdwn formatting, not Markdown:
- bold uses single asterisks: *bold*
- italics use underscores: _italic_
- bullets use the • character`

const dailyPrompt = `You are a personal productivity assistant. Write a short, actionable morning digest from the data below. Stay under 180 words and keep it friendly.

` + slackFormatting + `

Structure:
*Top 3 actions* taken from active projects, admin tasks due today and follow-ups.
*Might be stuck on* listing stalled projects, if any.
*Small win* mentioning a recently completed project, if any.
*Word of the day* with the word, part of speech, definition and example when vocabularyWord is present. Skip it otherwise.

Call out overdue admin tasks prominently. Mention people who need a follow-up by name.

Data:`

const weeklyPrompt = `You are a personal productivity assistant. Write a weekly review from the data below. Stay under 250 words, be specific and reference real project and task names.

` + slackFormatting + `

Structure:
*What happened* with capture counts, projects moved forward, new people and new vocabulary (with the total).
*Biggest open loops* covering waiting or blocked work, overdue admin and pending follow-ups.
*Suggested focus for next week* as three concrete recommendations.
*Recurring theme* in one sentence about patterns in this week's captures.

Data:`

const examplePrompt = `Write one example sentence that uses the word %q (meaning: %s) naturally. Return only the sentence.`
