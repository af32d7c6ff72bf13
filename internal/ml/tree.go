package ml

import (
	"math/rand"
	"sort"
)

const leaf = -1

// DecisionTree бинарное дерево решений (CART, критерий Джини), хранится плоскими массивами.
// Для листа Feature[i] == -1; Proba[i] доля положительного класса в узле.
type DecisionTree struct {
	Feature   []int     `json:"feature"`
	Threshold []float64 `json:"threshold"`
	Left      []int     `json:"left"`
	Right     []int     `json:"right"`
	Proba     []float64 `json:"proba"`
}

type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	maxFeatures     int
}

type treeBuilder struct {
	x      [][]float64
	y      []int
	params treeParams
	rng    *rand.Rand
	tree   *DecisionTree
}

// fitTree строит дерево по подвыборке idx (индексы могут повторяться при бутстрепе).
func fitTree(x [][]float64, y []int, idx []int, params treeParams, rng *rand.Rand) *DecisionTree {
	b := &treeBuilder{x: x, y: y, params: params, rng: rng, tree: &DecisionTree{}}
	b.build(idx, 0)
	return b.tree
}

func (b *treeBuilder) build(idx []int, depth int) int {
	positives := 0
	for _, i := range idx {
		positives += b.y[i]
	}

	node := len(b.tree.Feature)
	b.tree.Feature = append(b.tree.Feature, leaf)
	b.tree.Threshold = append(b.tree.Threshold, 0)
	b.tree.Left = append(b.tree.Left, leaf)
	b.tree.Right = append(b.tree.Right, leaf)
	b.tree.Proba = append(b.tree.Proba, float64(positives)/float64(len(idx)))

	if len(idx) < b.params.minSamplesSplit || positives == 0 || positives == len(idx) {
		return node
	}
	if b.params.maxDepth > 0 && depth >= b.params.maxDepth {
		return node
	}

	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		return node
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	b.tree.Feature[node] = feature
	b.tree.Threshold[node] = threshold
	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.tree.Left[node] = l
	b.tree.Right[node] = r
	return node
}

type sample struct {
	value float64
	label int
}

// bestSplit перебирает случайное подмножество признаков. Константные признаки
// не засчитываются в лимит maxFeatures, поэтому поиск продолжается, пока не
// найдётся хотя бы один признак с возможным разбиением.
func (b *treeBuilder) bestSplit(idx []int) (int, float64, bool) {
	width := len(b.x[idx[0]])
	order := b.rng.Perm(width)

	total := len(idx)
	totalPos := 0
	for _, i := range idx {
		totalPos += b.y[i]
	}

	bestFeature, bestThreshold := leaf, 0.0
	bestImpurity := 0.0
	found := false
	visited := 0

	samples := make([]sample, total)
	for _, f := range order {
		if visited >= b.params.maxFeatures && found {
			break
		}
		for k, i := range idx {
			samples[k] = sample{value: b.x[i][f], label: b.y[i]}
		}
		sort.Slice(samples, func(a, c int) bool { return samples[a].value < samples[c].value })
		if samples[0].value == samples[total-1].value {
			continue
		}
		visited++

		leftPos := 0
		for k := 0; k < total-1; k++ {
			leftPos += samples[k].label
			if samples[k].value == samples[k+1].value {
				continue
			}
			nLeft := k + 1
			nRight := total - nLeft
			impurity := (float64(nLeft)*gini(leftPos, nLeft) + float64(nRight)*gini(totalPos-leftPos, nRight)) / float64(total)
			if !found || impurity < bestImpurity {
				found = true
				bestImpurity = impurity
				bestFeature = f
				bestThreshold = midpoint(samples[k].value, samples[k+1].value)
			}
		}
	}
	return bestFeature, bestThreshold, found
}

func gini(positives, n int) float64 {
	p := float64(positives) / float64(n)
	return 2 * p * (1 - p)
}

func midpoint(a, b float64) float64 {
	m := a + (b-a)/2
	if m >= b {
		return a
	}
	return m
}

// predictProba возвращает долю положительного класса в листе.
func (t *DecisionTree) predictProba(x []float64) float64 {
	node := 0
	for t.Feature[node] != leaf {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.Left[node]
		} else {
			node = t.Right[node]
		}
	}
	return t.Proba[node]
}

// valid проверяет целостность дерева после десериализации.
func (t *DecisionTree) valid(width int) bool {
	n := len(t.Feature)
	if n == 0 || len(t.Threshold) != n || len(t.Left) != n || len(t.Right) != n || len(t.Proba) != n {
		return false
	}
	for i := 0; i < n; i++ {
		if t.Feature[i] == leaf {
			continue
		}
		if t.Feature[i] < 0 || t.Feature[i] >= width {
			return false
		}
		// дети всегда записываются после родителя
		if t.Left[i] <= i || t.Left[i] >= n || t.Right[i] <= i || t.Right[i] >= n {
			return false
		}
	}
	return true
}
