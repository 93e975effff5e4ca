package rank

import "NewsRadar/internal/domain"

// categoryEntry pairs a category with its trigger keywords. Declaration
// order is load-bearing: the classifier breaks ties in favour of the
// first-declared category.
type categoryEntry struct {
	Category domain.Category
	Keywords []string
}

var categoryLexicon = []categoryEntry{
	{domain.CategoryEarnings, []string{
		"earnings", "eps", "revenue", "quarter", "results", "guidance",
		"forecast", "profit", "loss", "beat", "miss",
	}},
	{domain.CategoryAnalyst, []string{
		"upgrade", "downgrade", "price target", "rating", "initiated",
		"reiterate", "analyst",
	}},
	{domain.CategoryManagement, []string{
		"ceo", "cfo", "board", "resigns", "appoints", "executive", "leadership",
	}},
	{domain.CategoryCorporate, []string{
		"acquisition", "merger", "buyback", "dividend", "split", "deal",
		"partnership", "expansion",
	}},
	{domain.CategoryFiling, []string{
		"13f", "stake", "holdings", "llc increases", "llc reduces",
		"management purchased", "increases position", "reduces position",
		"institutional", "buys shares", "sells shares", "buys new shares",
		"new position in",
	}},
	{domain.CategoryRegulation, []string{
		"sec", "lawsuit", "settlement", "investigation", "fine", "penalty",
		"compliance",
	}},
}

// noiseKeywords flag off-topic vocabulary: weather, crime, war, politics,
// sports/entertainment, travel disruption, crypto-only hype. One incidental
// mention is tolerated; two or more is a hard reject.
var noiseKeywords = []string{
	"weather", "storm", "hurricane", "flood", "tornado", "freeze", "snow",
	"shooting", "murder", "crime", "arrest", "police",
	"war", "military", "invasion", "troops", "missile", "ukraine", "russia",
	"election", "vote", "congress", "senate", "democrat", "republican", "trump", "biden",
	"sports", "game", "celebrity", "movie", "concert", "nfl", "nba",
	"airline delays", "flight cancel", "airport",
	"bitcoin price", "crypto crash", "meme coin",
}

// highImpactKeywords earn +2 each, capped at +8 per item.
var highImpactKeywords = []string{
	"earnings", "revenue", "guidance", "quarter", "profit", "loss",
	"upgrade", "downgrade", "beat", "miss", "forecast", "outlook",
	"acquisition", "merger", "buyback", "dividend", "split",
	"sec", "filing", "lawsuit", "settlement", "investigation",
	"ceo", "cfo", "executive", "board", "analyst",
}

// sourceWeight pairs a source substring with its credibility weight.
// Ordered so lookup is deterministic when a link matches more than one entry.
type sourceWeightEntry struct {
	Match  string
	Weight float64
}

var sourceWeights = []sourceWeightEntry{
	{"reuters", 5},
	{"wsj", 5},
	{"ft.com", 5},
	{"bloomberg", 5},
	{"cnbc", 4},
	{"seekingalpha", 3},
	{"yahoo", 3},
	{"benzinga", 2},
	{"marketwatch", 2},
	{"nasdaq", 2},
	{"stocktwits", 0},
	{"google", 1},
}

const defaultSourceWeight = 1
