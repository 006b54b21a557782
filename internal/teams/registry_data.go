package teams

var registry = []Team{
	// AL East
	{Code: "BAL", Name: "Orioles", City: "Baltimore", Color: "#DF4601", Division: "AL East", Park: Park{Stadium: "Oriole Park", LeftFt: 333, CenterFt: 410, RightFt: 318}, Jerseys: []string{"Home", "Away", "City Connect"}},
	{Code: "BOS", Name: "Red Sox", City: "Boston", Color: "#BD3039", Division: "AL East", Park: Park{Stadium: "Fenway Park", LeftFt: 310, CenterFt: 390, RightFt: 302}, Jerseys: []string{"Home", "Away", "Yellow CC"}},
	{Code: "NYY", Name: "Yankees", City: "New York", Color: "#002D72", Division: "AL East", Park: Park{Stadium: "Yankee Stadium", LeftFt: 318, CenterFt: 408, RightFt: 314}, Jerseys: []string{"Home", "Away"}},
	{Code: "TB", Name: "Rays", City: "Tampa Bay", Color: "#092C5C", Division: "AL East", Park: Park{Stadium: "Tropicana Field", LeftFt: 315, CenterFt: 404, RightFt: 322}, Jerseys: []string{"Home", "Away", "Grit CC"}},
	{Code: "TOR", Name: "Blue Jays", City: "Toronto", Color: "#134A8E", Division: "AL East", Park: Park{Stadium: "Rogers Centre", LeftFt: 328, CenterFt: 400, RightFt: 328}, Jerseys: []string{"Home", "Away", "Night Jay CC"}},

	// AL Central
	{Code: "CWS", Name: "White Sox", City: "Chicago", Color: "#27251F", Division: "AL Central", Park: Park{Stadium: "Guaranteed Rate Field", LeftFt: 330, CenterFt: 400, RightFt: 335}, Jerseys: []string{"Home", "Away", "Southside CC"}},
	{Code: "CLE", Name: "Guardians", City: "Cleveland", Color: "#00385D", Division: "AL Central", Park: Park{Stadium: "Progressive Field", LeftFt: 325, CenterFt: 400, RightFt: 325}, Jerseys: []string{"Home", "Away", "City Connect"}},
	{Code: "DET", Name: "Tigers", City: "Detroit", Color: "#0C2340", Division: "AL Central", Park: Park{Stadium: "Comerica Park", LeftFt: 342, CenterFt: 412, RightFt: 330}, Jerseys: []string{"Home", "Away", "Motor City CC"}},
	{Code: "KC", Name: "Royals", City: "Kansas City", Color: "#004687", Division: "AL Central", Park: Park{Stadium: "Kauffman Stadium", LeftFt: 330, CenterFt: 410, RightFt: 330}, Jerseys: []string{"Home", "Away", "Fountain CC"}},
	{Code: "MIN", Name: "Twins", City: "Minnesota", Color: "#002B5C", Division: "AL Central", Park: Park{Stadium: "Target Field", LeftFt: 339, CenterFt: 404, RightFt: 328}, Jerseys: []string{"Home", "Away", "Lake CC"}},

	// AL West
	{Code: "HOU", Name: "Astros", City: "Houston", Color: "#002D62", Division: "AL West", Park: Park{Stadium: "Daikin Park", LeftFt: 315, CenterFt: 409, RightFt: 326}, Jerseys: []string{"Home", "Away", "Space City CC"}},
	{Code: "LAA", Name: "Angels", City: "Anaheim", Color: "#BA0021", Division: "AL West", Park: Park{Stadium: "Angel Stadium", LeftFt: 330, CenterFt: 400, RightFt: 330}, Jerseys: []string{"Home", "Away", "Surf CC"}},
	{Code: "ATH", Name: "Athletics", City: "Sacramento", Color: "#003831", Division: "AL West", Park: Park{Stadium: "Sutter Health Park", LeftFt: 330, CenterFt: 400, RightFt: 330}, Jerseys: []string{"Home", "Away", "Gold V2"}},
	{Code: "SEA", Name: "Mariners", City: "Seattle", Color: "#0C2C56", Division: "AL West", Park: Park{Stadium: "T-Mobile Park", LeftFt: 331, CenterFt: 401, RightFt: 326}, Jerseys: []string{"Home", "Away", "City Connect"}},
	{Code: "TEX", Name: "Rangers", City: "Arlington", Color: "#003278", Division: "AL West", Park: Park{Stadium: "Globe Life Field", LeftFt: 329, CenterFt: 407, RightFt: 326}, Jerseys: []string{"Home", "Away", "2026 CC"}},

	// NL East
	{Code: "ATL", Name: "Braves", City: "Atlanta", Color: "#13274F", Division: "NL East", Park: Park{Stadium: "Truist Park", LeftFt: 335, CenterFt: 400, RightFt: 325}, Jerseys: []string{"Home", "Away", "The A CC"}},
	{Code: "MIA", Name: "Marlins", City: "Miami", Color: "#00A3E0", Division: "NL East", Park: Park{Stadium: "LoanDepot Park", LeftFt: 344, CenterFt: 400, RightFt: 335}, Jerseys: []string{"Home", "Away", "Sugar Kings CC"}},
	{Code: "NYM", Name: "Mets", City: "New York", Color: "#002D72", Division: "NL East", Park: Park{Stadium: "Citi Field", LeftFt: 335, CenterFt: 408, RightFt: 330}, Jerseys: []string{"Home", "Away", "NYC CC"}},
	{Code: "PHI", Name: "Phillies", City: "Philadelphia", Color: "#E81828", Division: "NL East", Park: Park{Stadium: "Citizens Bank Park", LeftFt: 329, CenterFt: 401, RightFt: 330}, Jerseys: []string{"Home", "Away", "City Connect"}},
	{Code: "WSH", Name: "Nationals", City: "Washington", Color: "#AB0003", Division: "NL East", Park: Park{Stadium: "Nationals Park", LeftFt: 337, CenterFt: 402, RightFt: 335}, Jerseys: []string{"Home", "Away", "Bloom CC"}},

	// NL Central
	{Code: "CHC", Name: "Cubs", City: "Chicago", Color: "#0E3386", Division: "NL Central", Park: Park{Stadium: "Wrigley Field", LeftFt: 355, CenterFt: 400, RightFt: 353}, Jerseys: []string{"Home", "Away", "Wrigleyville CC"}},
	{Code: "CIN", Name: "Reds", City: "Cincinnati", Color: "#C6011F", Division: "NL Central", Park: Park{Stadium: "Great American Ball Park", LeftFt: 328, CenterFt: 404, RightFt: 325}, Jerseys: []string{"Home", "Away", "City Connect"}},
	{Code: "MIL", Name: "Brewers", City: "Milwaukee", Color: "#12284B", Division: "NL Central", Park: Park{Stadium: "American Family Field", LeftFt: 344, CenterFt: 400, RightFt: 345}, Jerseys: []string{"Home", "Away", "Brew Crew CC"}},
	{Code: "PIT", Name: "Pirates", City: "Pittsburgh", Color: "#27251F", Division: "NL Central", Park: Park{Stadium: "PNC Park", LeftFt: 325, CenterFt: 399, RightFt: 320}, Jerseys: []string{"Home", "Away", "PGH CC"}},
	{Code: "STL", Name: "Cardinals", City: "St. Louis", Color: "#C41E3A", Division: "NL Central", Park: Park{Stadium: "Busch Stadium", LeftFt: 336, CenterFt: 400, RightFt: 335}, Jerseys: []string{"Home", "Away", "The Lou CC"}},

	// NL West
	{Code: "ARI", Name: "Diamondbacks", City: "Phoenix", Color: "#A71930", Division: "NL West", Park: Park{Stadium: "Chase Field", LeftFt: 330, CenterFt: 407, RightFt: 334}, Jerseys: []string{"Home", "Away", "Serpientes CC"}},
	{Code: "COL", Name: "Rockies", City: "Denver", Color: "#333366", Division: "NL West", Park: Park{Stadium: "Coors Field", LeftFt: 347, CenterFt: 415, RightFt: 350}, Jerseys: []string{"Home", "Away", "Mountain CC"}},
	{Code: "LAD", Name: "Dodgers", City: "Los Angeles", Color: "#005A9C", Division: "NL West", Park: Park{Stadium: "Dodger Stadium", LeftFt: 330, CenterFt: 395, RightFt: 330}, Jerseys: []string{"Home", "Away", "Los Dodgers V2"}},
	{Code: "SD", Name: "Padres", City: "San Diego", Color: "#2F241D", Division: "NL West", Park: Park{Stadium: "Petco Park", LeftFt: 334, CenterFt: 396, RightFt: 322}, Jerseys: []string{"Home", "Away", "2026 CC"}},
	{Code: "SF", Name: "Giants", City: "San Francisco", Color: "#FD5A1E", Division: "NL West", Park: Park{Stadium: "Oracle Park", LeftFt: 339, CenterFt: 391, RightFt: 309}, Jerseys: []string{"Home", "Away", "Fog City CC"}},
}
