package catalog

import (
	"github.com/mathforge/mathforge/internal/progress"
	"github.com/mathforge/mathforge/internal/session"
)

// def is the package-level default catalog, built from the seed at init.
var def *Catalog

func init() {
	c, err := New(seedTopics(), seedBank())
	if err != nil {
		panic("catalog seed invalid: " + err.Error())
	}
	def = c
}

// Default returns the built-in catalog.
func Default() *Catalog { return def }

// Demo returns the seed forest with the sample completion counts shown on
// the public topics page, including the out-of-date parent counts.
func Demo() []progress.TopicNode {
	done := map[string]int{
		"calculus":                        32,
		"calculus-differentiation":        12,
		"calculus-integration":            15,
		"calculus-differential-equations": 5,
		"algebra":                         28,
		"algebra-quadratics":              10,
		"algebra-functions":               12,
		"algebra-logarithms":              6,
		"statistics":                      18,
		"statistics-probability":          8,
		"statistics-distributions":        6,
		"statistics-hypothesis-testing":   4,
		"mechanics":                       10,
		"mechanics-kinematics":            5,
		"mechanics-forces":                4,
		"mechanics-energy":                1,
	}
	forest := seedTopics()
	var set func(n *progress.TopicNode)
	set = func(n *progress.TopicNode) {
		n.CompletedQuestions = done[n.ID]
		for i := range n.Children {
			set(&n.Children[i])
		}
	}
	for i := range forest {
		set(&forest[i])
	}
	return forest
}

func seedTopics() []progress.TopicNode {
	return []progress.TopicNode{
		{
			ID:             "calculus",
			Title:          "Calculus",
			Description:    "Differentiation, integration and differential equations",
			TotalQuestions: 45,
			Children: []progress.TopicNode{
				{ID: "calculus-differentiation", Title: "Differentiation", Description: "Rates of change, the power rule and gradients of curves", TotalQuestions: 15},
				{ID: "calculus-integration", Title: "Integration", Description: "Antiderivatives and definite integrals", TotalQuestions: 20},
				{ID: "calculus-differential-equations", Title: "Differential Equations", Description: "Separable first-order equations", TotalQuestions: 10},
			},
		},
		{
			ID:             "algebra",
			Title:          "Algebra",
			Description:    "Quadratics, functions, logarithms and exponentials",
			TotalQuestions: 38,
			Children: []progress.TopicNode{
				{ID: "algebra-quadratics", Title: "Quadratics", Description: "Roots, factorising and the discriminant", TotalQuestions: 12},
				{ID: "algebra-functions", Title: "Functions", Description: "Composition, inverses and transformations", TotalQuestions: 16},
				{ID: "algebra-logarithms", Title: "Logarithms & Exponentials", Description: "Laws of logarithms and exponential equations", TotalQuestions: 10},
			},
		},
		{
			ID:             "statistics",
			Title:          "Statistics",
			Description:    "Probability, distributions and hypothesis testing",
			TotalQuestions: 30,
			Children: []progress.TopicNode{
				{ID: "statistics-probability", Title: "Probability", Description: "Events, independence and conditional probability", TotalQuestions: 12},
				{ID: "statistics-distributions", Title: "Probability Distributions", Description: "Binomial and normal distributions", TotalQuestions: 10},
				{ID: "statistics-hypothesis-testing", Title: "Hypothesis Testing", Description: "Significance levels and critical regions", TotalQuestions: 8},
			},
		},
		{
			ID:             "mechanics",
			Title:          "Mechanics",
			Description:    "Kinematics, forces, energy and power",
			TotalQuestions: 25,
			Children: []progress.TopicNode{
				{ID: "mechanics-kinematics", Title: "Kinematics", Description: "Motion with constant acceleration", TotalQuestions: 10},
				{ID: "mechanics-forces", Title: "Forces & Newton's Laws", Description: "Resultant forces and F = ma", TotalQuestions: 10},
				{ID: "mechanics-energy", Title: "Work, Energy & Power", Description: "Kinetic energy, work done and power", TotalQuestions: 5},
			},
		},
	}
}

func seedBank() map[string][]session.Problem {
	return map[string][]session.Problem{
		"calculus-differentiation": {
			{
				ID:         "differentiation-1",
				Prompt:     "Find the derivative of f(x) = 3x² + 2x - 5",
				Difficulty: session.DifficultyEasy,
				Marks:      3,
				Hints: []string{
					"Remember the power rule for differentiation.",
					"For a term ax^n, the derivative is nax^(n-1).",
				},
				Solution: "f'(x) = 6x + 2",
			},
			{
				ID:         "differentiation-2",
				Prompt:     "Differentiate y = x⁴ - 3x",
				Difficulty: session.DifficultyMedium,
				Marks:      3,
				Hints: []string{
					"Differentiate each term separately.",
					"The derivative of x⁴ is 4x³.",
				},
				Solution: "dy/dx = 4x³ - 3",
			},
			{
				ID:         "differentiation-3",
				Prompt:     "Find the gradient of the curve y = x² at the point x = 3",
				Difficulty: session.DifficultyEasy,
				Marks:      2,
				Hints: []string{
					"The gradient is the value of dy/dx.",
					"dy/dx = 2x, now substitute x = 3.",
				},
				Solution: "6",
			},
		},
		"calculus-integration": {
			{
				ID:         "integration-1",
				Prompt:     "Find ∫ 2x dx, omitting the constant of integration",
				Difficulty: session.DifficultyEasy,
				Marks:      2,
				Hints:      []string{"Integration reverses differentiation: raise the power by one and divide by the new power."},
				Solution:   "x²",
			},
			{
				ID:         "integration-2",
				Prompt:     "Evaluate the definite integral of 3x² from x = 0 to x = 2",
				Difficulty: session.DifficultyMedium,
				Marks:      3,
				Hints: []string{
					"An antiderivative of 3x² is x³.",
					"Evaluate x³ at the upper limit and subtract its value at the lower limit.",
				},
				Solution: "8",
			},
			{
				ID:         "integration-3",
				Prompt:     "Evaluate the definite integral of 1/x from x = 1 to x = e",
				Difficulty: session.DifficultyHard,
				Marks:      4,
				Hints: []string{
					"The antiderivative of 1/x is ln|x|.",
					"ln e = 1 and ln 1 = 0.",
				},
				Solution: "1",
			},
		},
		"calculus-differential-equations": {
			{
				ID:         "differential-equations-1",
				Prompt:     "Solve dy/dx = 2x given that y = 1 when x = 0. Give y in terms of x.",
				Difficulty: session.DifficultyMedium,
				Marks:      4,
				Hints: []string{
					"Integrate both sides with respect to x.",
					"y = x² + c; use the condition to find c.",
				},
				Solution: "y = x² + 1",
			},
			{
				ID:         "differential-equations-2",
				Prompt:     "For dy/dx = 3y with y = 2 when x = 0, find the value of dy/dx at x = 0",
				Difficulty: session.DifficultyEasy,
				Marks:      2,
				Hints:      []string{"Substitute the known value of y into the equation."},
				Solution:   "6",
			},
		},
		"algebra-quadratics": {
			{
				ID:         "quadratics-1",
				Prompt:     "Solve x² - 5x + 6 = 0 and give the larger root",
				Difficulty: session.DifficultyEasy,
				Marks:      2,
				Hints: []string{
					"Look for two numbers that multiply to 6 and add to -5.",
					"(x - 2)(x - 3) = 0",
				},
				Solution: "x = 3",
			},
			{
				ID:         "quadratics-2",
				Prompt:     "Find the discriminant of 2x² + 3x - 2",
				Difficulty: session.DifficultyMedium,
				Marks:      2,
				Hints:      []string{"The discriminant is b² - 4ac."},
				Solution:   "25",
			},
			{
				ID:         "quadratics-3",
				Prompt:     "Find the sum of the roots of x² - 7x + 10 = 0",
				Difficulty: session.DifficultyMedium,
				Marks:      2,
				Hints:      []string{"For ax² + bx + c, the roots sum to -b/a."},
				Solution:   "7",
			},
		},
		"algebra-functions": {
			{
				ID:         "functions-1",
				Prompt:     "Given f(x) = 2x + 3, find f(4)",
				Difficulty: session.DifficultyEasy,
				Marks:      1,
				Hints:      []string{"Replace x with 4."},
				Solution:   "11",
			},
			{
				ID:         "functions-2",
				Prompt:     "Given f(x) = x² and g(x) = x + 1, find f(g(2))",
				Difficulty: session.DifficultyMedium,
				Marks:      2,
				Hints: []string{
					"Work from the inside out.",
					"g(2) = 3, so find f(3).",
				},
				Solution: "9",
			},
			{
				ID:         "functions-3",
				Prompt:     "Given f(x) = 2x + 3, find the inverse function f⁻¹(x)",
				Difficulty: session.DifficultyMedium,
				Marks:      3,
				Hints: []string{
					"Write y = 2x + 3 and rearrange for x.",
					"Swap x and y at the end.",
				},
				Solution: "f⁻¹(x) = (x - 3)/2",
			},
		},
		"algebra-logarithms": {
			{
				ID:         "logarithms-1",
				Prompt:     "Evaluate log₂ 32",
				Difficulty: session.DifficultyEasy,
				Marks:      1,
				Hints:      []string{"Which power of 2 gives 32?"},
				Solution:   "5",
			},
			{
				ID:         "logarithms-2",
				Prompt:     "Solve 3ˣ = 81",
				Difficulty: session.DifficultyEasy,
				Marks:      2,
				Hints:      []string{"Write 81 as a power of 3."},
				Solution:   "x = 4",
			},
			{
				ID:         "logarithms-3",
				Prompt:     "Solve log₁₀ x = 3",
				Difficulty: session.DifficultyMedium,
				Marks:      2,
				Hints:      []string{"If log₁₀ x = k then x = 10^k."},
				Solution:   "x = 1000",
			},
		},
		"statistics-probability": {
			{
				ID:         "probability-1",
				Prompt:     "A fair six-sided die is rolled. Find the probability of an even number.",
				Difficulty: session.DifficultyEasy,
				Marks:      1,
				Hints:      []string{"Count the even faces."},
				Solution:   "1/2",
			},
			{
				ID:         "probability-2",
				Prompt:     "Two fair coins are tossed. Find the probability that both land heads.",
				Difficulty: session.DifficultyEasy,
				Marks:      1,
				Hints:      []string{"The tosses are independent, so multiply."},
				Solution:   "1/4",
			},
			{
				ID:         "probability-3",
				Prompt:     "A and B are independent with P(A) = 0.3 and P(B) = 0.5. Find P(A and B).",
				Difficulty: session.DifficultyMedium,
				Marks:      2,
				Hints:      []string{"For independent events P(A ∩ B) = P(A)P(B)."},
				Solution:   "0.15",
			},
		},
		"statistics-distributions": {
			{
				ID:         "distributions-1",
				Prompt:     "X ~ B(10, 0.5). Find E(X).",
				Difficulty: session.DifficultyEasy,
				Marks:      1,
				Hints:      []string{"For a binomial distribution E(X) = np."},
				Solution:   "5",
			},
			{
				ID:         "distributions-2",
				Prompt:     "X ~ B(20, 0.3). Find Var(X).",
				Difficulty: session.DifficultyMedium,
				Marks:      2,
				Hints:      []string{"For a binomial distribution Var(X) = np(1 - p)."},
				Solution:   "4.2",
			},
			{
				ID:         "distributions-3",
				Prompt:     "Z ~ N(0, 1). Find P(Z < 0).",
				Difficulty: session.DifficultyEasy,
				Marks:      1,
				Hints:      []string{"The standard normal distribution is symmetric about 0."},
				Solution:   "0.5",
			},
		},
		"statistics-hypothesis-testing": {
			{
				ID:         "hypothesis-testing-1",
				Prompt:     "A test is carried out at the 5% significance level. Write the significance level as a decimal.",
				Difficulty: session.DifficultyEasy,
				Marks:      1,
				Hints:      []string{"Percent means out of one hundred."},
				Solution:   "0.05",
			},
			{
				ID:         "hypothesis-testing-2",
				Prompt:     "In a two-tailed test at the 5% level, what probability lies in each tail?",
				Difficulty: session.DifficultyMedium,
				Marks:      2,
				Hints:      []string{"The significance level is split equally between both tails."},
				Solution:   "0.025",
			},
		},
		"mechanics-kinematics": {
			{
				ID:         "kinematics-1",
				Prompt:     "A particle starts from rest with acceleration 2 m/s². Find its speed in m/s after 5 s.",
				Difficulty: session.DifficultyEasy,
				Marks:      2,
				Hints:      []string{"Use v = u + at."},
				Solution:   "10",
			},
			{
				ID:         "kinematics-2",
				Prompt:     "A particle starts from rest with acceleration 2 m/s². Find the distance in m travelled in 5 s.",
				Difficulty: session.DifficultyMedium,
				Marks:      2,
				Hints:      []string{"Use s = ut + ½at²."},
				Solution:   "25",
			},
		},
		"mechanics-forces": {
			{
				ID:         "forces-1",
				Prompt:     "A 4 kg mass accelerates at 3 m/s². Find the resultant force in N.",
				Difficulty: session.DifficultyEasy,
				Marks:      1,
				Hints:      []string{"Newton's second law: F = ma."},
				Solution:   "12",
			},
			{
				ID:         "forces-2",
				Prompt:     "Taking g = 9.8 m/s², find the weight in N of a 5 kg mass.",
				Difficulty: session.DifficultyEasy,
				Marks:      1,
				Hints:      []string{"Weight is mg."},
				Solution:   "49",
			},
		},
		"mechanics-energy": {
			{
				ID:         "energy-1",
				Prompt:     "Find the kinetic energy in J of a 2 kg mass moving at 3 m/s.",
				Difficulty: session.DifficultyEasy,
				Marks:      2,
				Hints:      []string{"KE = ½mv²."},
				Solution:   "9",
			},
			{
				ID:         "energy-2",
				Prompt:     "A constant force of 10 N moves an object 4 m in its direction. Find the work done in J.",
				Difficulty: session.DifficultyEasy,
				Marks:      1,
				Hints:      []string{"Work done = force × distance."},
				Solution:   "40",
			},
		},
	}
}
