package banditstore

import "fmt"

// Key layout for the remote backend: bandit:experiment:{name}:*. These
// builders neither check nor escape ":". The bandit engine rejects it in the
// experiment and arm names given to Init, in the arm name given to CreateArm,
// Reward and BulkReward; the experiment name of a Ref and the arm name given
// to SoftDeleteArm or HardDeleteArm reach these builders unchecked.

func paramsKey(experiment string) string {
	return fmt.Sprintf("bandit:experiment:%s:params", experiment)
}

func armNamesKey(experiment string) string {
	return fmt.Sprintf("bandit:experiment:%s:arm-names", experiment)
}

func armStateKey(experiment, arm string) string {
	return fmt.Sprintf("bandit:experiment:%s:arm-states:%s", experiment, arm)
}

func maxRewardKey(experiment string) string {
	return fmt.Sprintf("bandit:experiment:%s:max-reward", experiment)
}

func chooseCountKey(experiment string) string {
	return fmt.Sprintf("bandit:experiment:%s:choose-count", experiment)
}
