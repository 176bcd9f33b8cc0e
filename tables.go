package gibber

import "strings"

// Reference n-gram sets, ordered by descending frequency in English prose.
// The bigram set backs the transition score over raw text; the trigram and
// quadgram sets back the word-internal frequency scores.
var (
	commonBigrams = ngramSet(`
		th he in er an re on at en nd ti es or te of ed is it al ar st
		to nt ng se ha as ou io le ve co me de hi ri ro ic ne ea ra ce
		li ch ll be ma si om ur`)

	commonTrigrams = ngramSet(`
		the and ing ion tio ent ati for her ter hat tha ere con res ver
		all ons nce men ith ted ers pro thi wit are ess not ive was ect
		rea com eve per int est sta cti ica ist ear ain one our iti rat
		ell ant`)

	commonQuadgrams = ngramSet(`
		tion atio that ther with ment ions this here from ould ting hich
		whic ctio ever they thin have othe were tive ough ight`)
)

func ngramSet(grams string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, g := range strings.Fields(grams) {
		set[g] = struct{}{}
	}
	return set
}
